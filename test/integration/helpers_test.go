//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // HOME, so ~/.machine-creator/config.yaml is sandboxed
	TemplatesDir string // MACHINE_CREATOR_TEMPLATES_DIR
	MachinesDir  string // MACHINE_CREATOR_MACHINES_DIR
}

// setupTestEnv creates isolated temp directories and points the config
// environment variables at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		TemplatesDir: t.TempDir(),
		MachinesDir:  t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("MACHINE_CREATOR_TEMPLATES_DIR", env.TemplatesDir)
	t.Setenv("MACHINE_CREATOR_MACHINES_DIR", env.MachinesDir)
	viper.Reset()
	t.Cleanup(viper.Reset)

	return env
}

// setupTemplates writes a complete code-reviewer template and an incomplete
// scratch template into templatesDir.
func setupTemplates(t *testing.T, templatesDir string) {
	t.Helper()

	reviewer := filepath.Join(templatesDir, "code-reviewer")
	writeFile(t, filepath.Join(reviewer, "CLAUDE.md"), `# Code Reviewer

You are a careful code reviewer running inside a sandboxed machine.

## Workspace

Repositories are cloned into /home/user/workspace. Review diffs there and
leave comments as markdown files next to the change.
`)
	writeFile(t, filepath.Join(reviewer, ".claude", "settings.json"), `{
  "permissions": {
    "allow": ["Read", "Grep"],
    "deny": ["Bash(rm:*)"],
    "defaultMode": "plan"
  }
}
`)
	writeFile(t, filepath.Join(reviewer, ".mcp.json"), `{
  "mcpServers": {
    "github": {
      "command": "npx",
      "args": ["-y", "@modelcontextprotocol/server-github"],
      "env": {"GITHUB_TOKEN": "${GITHUB_TOKEN}"}
    }
  }
}
`)
	writeFile(t, filepath.Join(reviewer, ".claude", "skills", "self-update", "SKILL.md"), `---
name: self-update
description: Update this machine's instructions and settings when asked.
---

# Self-Update

Edit CLAUDE.md, .claude/settings.json, or .mcp.json in place and keep the
existing structure intact.
`)
	writeFile(t, filepath.Join(reviewer, "README.md"), `# Code Reviewer

A machine that reviews pull requests and writes feedback into the workspace.
`)

	writeFile(t, filepath.Join(templatesDir, "scratch", "CLAUDE.md"), "notes\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
