package validate

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/This-Machine-AI/loving-grace/internal/machine"
	"github.com/This-Machine-AI/loving-grace/internal/manifest"
)

const (
	minInstructionsLen = 100
	minReadmeLen       = 50
	minSkillSize       = 100
)

var (
	todoCommentPattern = regexp.MustCompile(`(?i)<!--\s*TODO:`)
	todoWordPattern    = regexp.MustCompile(`\bTODO\b`)
)

// Validate runs every check against the machine directory at path. The
// caller is expected to have confirmed that path is a directory.
func Validate(path string) *Report {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	layout := machine.NewLayout(path)

	name := filepath.Base(path)
	if name == string(filepath.Separator) || name == "." {
		name = ""
	}

	r := &Report{Name: name, Path: path}
	checks := []func() []Finding{
		func() []Finding { return checkName(name) },
		func() []Finding { return checkInstructions(layout.Instructions()) },
		func() []Finding { return checkSettings(layout.Settings()) },
		func() []Finding { return checkMCP(layout.MCP()) },
		func() []Finding { return checkReadme(layout.Readme()) },
		func() []Finding { return checkSelfUpdateSkill(layout.Skill()) },
		func() []Finding { return checkConfigDir(layout.ConfigDir()) },
	}
	for _, check := range checks {
		r.Findings = append(r.Findings, check()...)
	}

	log.Debug("Validation finished", "machine", name, "findings", len(r.Findings))
	return r
}

// checkName applies the naming convention to the machine directory name.
// Underscores are discouraged rather than forbidden.
func checkName(name string) []Finding {
	var out []Finding
	for _, p := range machine.NameProblems(name) {
		switch p {
		case machine.NameEmpty:
			return []Finding{errorf("", "Machine name is empty")}
		case machine.NameNotLowercase:
			out = append(out, errorf("", "Machine name must be lowercase: '%s' -> '%s'", name, strings.ToLower(name)))
		case machine.NameHasSpace:
			out = append(out, errorf("", "Machine name cannot contain spaces, use hyphens instead"))
		case machine.NameHasUnderscore:
			out = append(out, warnf("", "Machine name uses underscores, prefer hyphens for consistency"))
		case machine.NameBadStart:
			out = append(out, errorf("", "Machine name must start with a letter"))
		}
	}
	return out
}

func checkInstructions(path string) []Finding {
	file := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Finding{errorf("", "Required file missing: %s", file)}
		}
		return []Finding{errorf(file, "Could not read file: %v", err)}
	}
	content := string(data)
	trimmed := strings.TrimSpace(content)

	var out []Finding
	if !strings.Contains(strings.ToLower(content), "workspace") {
		out = append(out, warnf(file, "Missing 'Workspace' section - machines should document the workspace path"))
	}
	if !strings.HasPrefix(trimmed, "#") {
		out = append(out, warnf(file, "%s should start with a heading", file))
	}
	if n := countTODOs(content); n > 0 {
		out = append(out, warnf(file, "Contains %d TODO marker(s) - remember to complete these", n))
	}
	if utf8.RuneCountInString(trimmed) < minInstructionsLen {
		out = append(out, warnf(file, "%s seems too short - consider adding more detail", file))
	}
	return out
}

// countTODOs adds HTML-comment markers and bare TODO words. A commented
// "<!-- TODO:" matches both patterns and counts twice.
func countTODOs(content string) int {
	return len(todoCommentPattern.FindAllStringIndex(content, -1)) +
		len(todoWordPattern.FindAllStringIndex(content, -1))
}

// checkJSONFile reports a missing or malformed JSON document and any missing
// top-level keys. It returns the parsed document when one is available.
func checkJSONFile(path string, requiredKeys ...string) ([]Finding, *gjson.Result) {
	file := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Finding{errorf("", "Required file missing: %s", file)}, nil
		}
		return []Finding{errorf(file, "Could not read file: %v", err)}, nil
	}

	if err := manifest.CheckJSON(data); err != nil {
		return []Finding{errorf(file, "Invalid JSON: %v", err)}, nil
	}

	doc := gjson.ParseBytes(data)
	var out []Finding
	for _, key := range requiredKeys {
		if !hasKey(doc, key) {
			out = append(out, warnf(file, "Missing recommended key: '%s'", key))
		}
	}
	return out, &doc
}

// hasKey reports whether obj is a JSON object containing key.
func hasKey(obj gjson.Result, key string) bool {
	return obj.IsObject() && obj.Get(gjsonEscape(key)).Exists()
}

func gjsonEscape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// checkSettings validates .claude/settings.json. A permissions block with
// neither defaultMode nor an allow list is reported once; the two keys are
// treated as interchangeable signs that a permission mode is configured.
func checkSettings(path string) []Finding {
	out, doc := checkJSONFile(path, "permissions")
	if doc == nil {
		return out
	}

	perms := gjson.Result{}
	if doc.IsObject() {
		perms = doc.Get("permissions")
	}
	if !hasKey(perms, "defaultMode") && !hasKey(perms, "allow") {
		out = append(out, warnf(filepath.Base(path), "No permission mode configured - consider setting defaultMode or allow list"))
	}
	return out
}

func checkMCP(path string) []Finding {
	out, _ := checkJSONFile(path, "mcpServers")
	return out
}

// checkReadme treats README.md as optional: problems are warnings only.
func checkReadme(path string) []Finding {
	file := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Finding{warnf("", "Missing %s - recommended for documentation", file)}
		}
		return []Finding{warnf(file, "Could not read file: %v", err)}
	}

	if utf8.RuneCountInString(strings.TrimSpace(string(data))) < minReadmeLen {
		return []Finding{warnf(file, "%s seems too short", file)}
	}
	return nil
}

func checkSelfUpdateSkill(path string) []Finding {
	info, err := os.Stat(path)
	if err != nil {
		return []Finding{warnf("", "Missing self-update skill - machines should include %s", machine.SkillRelPath())}
	}
	if info.Size() < minSkillSize {
		return []Finding{warnf(machine.SkillRelPath(), "Self-update skill seems too short")}
	}
	return nil
}

func checkConfigDir(path string) []Finding {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return []Finding{errorf("", "Missing %s/ directory", filepath.Base(path))}
	}
	return nil
}
