//go:build integration

package integration_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/This-Machine-AI/loving-grace/internal/config"
	"github.com/This-Machine-AI/loving-grace/internal/machine"
	"github.com/This-Machine-AI/loving-grace/internal/manifest"
	"github.com/This-Machine-AI/loving-grace/internal/scaffold"
	"github.com/This-Machine-AI/loving-grace/internal/validate"
)

// TestFullFlowCreateAndValidate tests the complete flow:
// load config -> create default machine -> validate -> fill in TODOs -> validate strictly.
func TestFullFlowCreateAndValidate(t *testing.T) {
	env := setupTestEnv(t)

	// Step 1: Config picks up the sandboxed directories.
	config.Load()
	if got := config.MachinesDir(); got != env.MachinesDir {
		t.Fatalf("MachinesDir() = %q, want %q", got, env.MachinesDir)
	}

	// Step 2: Create a default machine.
	result, err := scaffold.CreateDefault("demo-bot", config.MachinesDir(), false)
	if err != nil {
		t.Fatalf("CreateDefault: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("generated machine should verify cleanly, got %v", result.Warnings)
	}

	layout := machine.Layout{Root: result.OutputDir}
	assertDirExists(t, layout.ConfigDir())
	assertDirExists(t, layout.SkillDir())
	assertFileContains(t, layout.Instructions(), "# Demo Bot")
	assertFileContains(t, layout.Instructions(), "/home/user/workspace")

	// Step 3: Validation passes with only the TODO warning.
	report := validate.Validate(result.OutputDir)
	if n := len(report.Errors()); n != 0 {
		t.Fatalf("expected 0 errors, got %d: %v", n, report.Errors())
	}
	if !report.Passed(false) {
		t.Error("default machine should pass non-strict validation")
	}
	if report.Passed(true) {
		t.Error("default machine should fail strict validation because of TODO markers")
	}

	// Step 4: Replace the TODO markers and validate strictly.
	data, err := os.ReadFile(layout.Instructions())
	if err != nil {
		t.Fatalf("reading instructions: %v", err)
	}
	content := strings.ReplaceAll(string(data), "<!-- TODO: Define the machine's core capabilities -->", "- Answers questions about the workspace")
	if err := os.WriteFile(layout.Instructions(), []byte(content), 0644); err != nil {
		t.Fatalf("writing instructions: %v", err)
	}
	writeFile(t, layout.Readme(), "# Demo Bot\n\nA small demonstration machine that answers questions about the workspace.\n")

	report = validate.Validate(result.OutputDir)
	if !report.Passed(true) {
		t.Errorf("completed machine should pass strict validation, got %v", report.Findings)
	}
}

// TestFullFlowTemplateCopy verifies that a named template is copied verbatim,
// verified against the embedded schemas, and validates cleanly.
func TestFullFlowTemplateCopy(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplatesDir)
	config.Load()

	// Step 1: Copy the template.
	result, err := scaffold.CreateFromTemplate("reviewer", env.MachinesDir, config.TemplatesDir(), "code-reviewer", false)
	if err != nil {
		t.Fatalf("CreateFromTemplate: %v", err)
	}
	if result.Template != "code-reviewer" {
		t.Errorf("Template = %q, want code-reviewer", result.Template)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected verification warnings: %v", result.Warnings)
	}

	// Step 2: Every template file is present in the copy.
	layout := machine.Layout{Root: result.OutputDir}
	for _, p := range []string{layout.Instructions(), layout.Settings(), layout.MCP(), layout.Skill(), layout.Readme()} {
		assertFileExists(t, p)
	}

	// Step 3: The copied MCP manifest decodes into typed servers.
	mcp, err := manifest.ParseMCP(layout.MCP())
	if err != nil {
		t.Fatalf("ParseMCP: %v", err)
	}
	server, ok := mcp.MCPServers["github"]
	if !ok {
		t.Fatal("expected github server in copied .mcp.json")
	}
	if server.Env["GITHUB_TOKEN"] != "${GITHUB_TOKEN}" {
		t.Errorf("GITHUB_TOKEN = %q, want secret reference", server.Env["GITHUB_TOKEN"])
	}

	// Step 4: Strict validation passes.
	report := validate.Validate(result.OutputDir)
	if !report.Passed(true) {
		t.Errorf("copied template should pass strict validation, got %v", report.Findings)
	}
}

// TestFullFlowIncompleteTemplate verifies that an incomplete template is copied
// as-is and the validator reports what it is missing.
func TestFullFlowIncompleteTemplate(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplatesDir)

	result, err := scaffold.CreateFromTemplate("scratch-pad", env.MachinesDir, env.TemplatesDir, "scratch", false)
	if err != nil {
		t.Fatalf("CreateFromTemplate: %v", err)
	}

	report := validate.Validate(result.OutputDir)
	if len(report.Errors()) < 3 {
		t.Errorf("expected at least 3 errors for missing settings, mcp and .claude/, got %v", report.Errors())
	}
	if report.Passed(false) {
		t.Error("incomplete template should fail validation")
	}
}

// TestFullFlowForceReplace verifies that an existing machine is kept unless
// forced, and that a forced replacement removes stale files.
func TestFullFlowForceReplace(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplatesDir)

	result, err := scaffold.CreateDefault("demo-bot", env.MachinesDir, false)
	if err != nil {
		t.Fatalf("CreateDefault: %v", err)
	}
	stale := filepath.Join(result.OutputDir, "notes.txt")
	writeFile(t, stale, "keep me?")

	// Without force the existing machine is left alone.
	_, err = scaffold.CreateFromTemplate("demo-bot", env.MachinesDir, env.TemplatesDir, "code-reviewer", false)
	if !errors.Is(err, scaffold.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	assertFileExists(t, stale)

	// An unknown template fails before the existing machine is touched.
	_, err = scaffold.CreateFromTemplate("demo-bot", env.MachinesDir, env.TemplatesDir, "missing", true)
	if !errors.Is(err, scaffold.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	assertFileExists(t, stale)

	// With force the directory is replaced by the template.
	replaced, err := scaffold.CreateFromTemplate("demo-bot", env.MachinesDir, env.TemplatesDir, "code-reviewer", true)
	if err != nil {
		t.Fatalf("forced CreateFromTemplate: %v", err)
	}
	if !replaced.Replaced {
		t.Error("expected Replaced to be set")
	}
	assertFileNotExists(t, stale)
	assertFileContains(t, filepath.Join(replaced.OutputDir, "CLAUDE.md"), "# Code Reviewer")
}
