package machine

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"demo-bot", true},
		{"a", true},
		{"code-reviewer2", true},
		{"x-1-y", true},
		{"", false},
		{"Demo-bot", false},
		{"demoBot", false},
		{"demo bot", false},
		{"demo_bot", false},
		{"1bot", false},
		{"-bot", false},
		{"demo.bot", false},
		{"demo/bot", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidName(tt.name); got != tt.want {
				t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestValidNameRejectsAnyUppercase(t *testing.T) {
	for _, name := range []string{"A", "aB", "abc-D", "ABC", "a-b-C1"} {
		if ValidName(name) {
			t.Errorf("ValidName(%q) = true, want false", name)
		}
	}
}

func TestNameProblems(t *testing.T) {
	tests := []struct {
		name string
		want []NameProblem
	}{
		{"", []NameProblem{NameEmpty}},
		{"ok-name", nil},
		{"Bad Name", []NameProblem{NameNotLowercase, NameHasSpace, NameBadChar}},
		{"my_bot", []NameProblem{NameHasUnderscore, NameBadChar}},
		{"9lives", []NameProblem{NameBadStart}},
		{"_x", []NameProblem{NameHasUnderscore, NameBadStart, NameBadChar}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameProblems(tt.name)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NameProblems(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"demo-bot", "Demo Bot"},
		{"code-reviewer", "Code Reviewer"},
		{"assistant", "Assistant"},
		{"my-custom-machine", "My Custom Machine"},
		// A letter after a digit stays lowercase.
		{"bot2go", "Bot2go"},
		{"agent-v2-beta", "Agent V2 Beta"},
	}

	for _, tt := range tests {
		if got := Title(tt.name); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	l := NewLayout("/tmp/demo")

	tests := []struct {
		got  string
		want string
	}{
		{l.Instructions(), filepath.Join("/tmp/demo", "CLAUDE.md")},
		{l.Readme(), filepath.Join("/tmp/demo", "README.md")},
		{l.MCP(), filepath.Join("/tmp/demo", ".mcp.json")},
		{l.ConfigDir(), filepath.Join("/tmp/demo", ".claude")},
		{l.Settings(), filepath.Join("/tmp/demo", ".claude", "settings.json")},
		{l.Skill(), filepath.Join("/tmp/demo", ".claude", "skills", "self-update", "SKILL.md")},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}

	if got := SkillRelPath(); got != ".claude/skills/self-update/SKILL.md" {
		t.Errorf("SkillRelPath() = %q", got)
	}
}
