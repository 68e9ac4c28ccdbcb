package manifest

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Schema identifies one of the embedded document schemas.
type Schema string

const (
	SchemaSettings Schema = "settings.schema.json"
	SchemaMCP      Schema = "mcp.schema.json"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	compiled    map[Schema]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation problem.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/permissions/defaultMode")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// String formats the issue as "path: message", or just the message at the root.
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// compileSchemas compiles every embedded schema once.
func compileSchemas() (map[Schema]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		names := []Schema{SchemaSettings, SchemaMCP}
		for _, name := range names {
			raw, err := schemaFS.ReadFile("schema/" + string(name))
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(string(name), doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
		}

		out := make(map[Schema]*jsonschema.Schema, len(names))
		for _, name := range names {
			s, err := c.Compile(string(name))
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}
			out[name] = s
		}
		compiled = out
	})
	return compiled, compileErr
}

// Validate validates raw JSON bytes against the named schema.
// The error return is for malformed JSON or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func Validate(name Schema, data []byte) (*ValidationResult, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	schema, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	if err := CheckJSON(data); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// ValidateFile reads a file and validates it against the named schema.
func ValidateFile(name Schema, path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(name, data)
}

// ValidateSkill checks that a skill file carries frontmatter with a name
// and a description.
func ValidateSkill(data []byte) *ValidationResult {
	fm, _, err := ParseFrontmatter(data)
	return skillResult(fm, err)
}

// ValidateSkillFile reads a skill file and validates its frontmatter. Only a
// failure to read the file is returned as an error.
func ValidateSkillFile(path string) (*ValidationResult, error) {
	fm, err := ParseSkill(path)
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return nil, err
	}
	return skillResult(fm, err), nil
}

func skillResult(fm *SkillFrontmatter, err error) *ValidationResult {
	if err != nil {
		return &ValidationResult{Issues: []ValidationIssue{{Message: err.Error(), Keyword: "frontmatter"}}}
	}

	var issues []ValidationIssue
	if strings.TrimSpace(fm.Name) == "" {
		issues = append(issues, ValidationIssue{Path: "/name", Message: "missing property 'name'", Keyword: "required"})
	}
	if strings.TrimSpace(fm.Description) == "" {
		issues = append(issues, ValidationIssue{Path: "/description", Message: "missing property 'description'", Keyword: "required"})
	}
	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords only say that a branch failed.
		if keyword == "anyOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
