package validate

import "fmt"

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation result. File is empty when the finding is not
// tied to a single artifact.
type Finding struct {
	Severity Severity
	Message  string
	File     string
}

func (f Finding) String() string {
	if f.File != "" {
		return "[" + f.File + "] " + f.Message
	}
	return f.Message
}

func errorf(file, format string, args ...interface{}) Finding {
	return Finding{Severity: SeverityError, Message: fmt.Sprintf(format, args...), File: file}
}

func warnf(file, format string, args ...interface{}) Finding {
	return Finding{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), File: file}
}

// Report holds every finding for one machine, in the order checks ran.
type Report struct {
	Name     string
	Path     string
	Findings []Finding
}

// Errors returns the error findings in check order.
func (r *Report) Errors() []Finding { return r.filter(SeverityError) }

// Warnings returns the warning findings in check order.
func (r *Report) Warnings() []Finding { return r.filter(SeverityWarning) }

func (r *Report) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// FailureCount is the number of errors, plus warnings when strict is set.
// Strict mode only changes the count; warnings keep their severity.
func (r *Report) FailureCount(strict bool) int {
	n := len(r.Errors())
	if strict {
		n += len(r.Warnings())
	}
	return n
}

// Passed reports whether the machine has no failures under the given mode.
func (r *Report) Passed(strict bool) bool {
	return r.FailureCount(strict) == 0
}
