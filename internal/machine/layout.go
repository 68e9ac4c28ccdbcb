package machine

import "path/filepath"

// File and directory names inside a machine template.
const (
	InstructionsFile = "CLAUDE.md"
	ReadmeFile       = "README.md"
	MCPFile          = ".mcp.json"
	ConfigDir        = ".claude"
	SettingsFile     = "settings.json"
	SkillsDir        = "skills"
	SelfUpdateSkill  = "self-update"
	SkillFile        = "SKILL.md"
)

// DefaultPermissionMode is the permission mode written into new settings files.
const DefaultPermissionMode = "bypassPermissions"

// Layout resolves the well-known paths of a machine rooted at Root.
type Layout struct {
	Root string
}

// NewLayout returns the layout for the machine directory at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// Instructions returns the path to CLAUDE.md.
func (l Layout) Instructions() string { return filepath.Join(l.Root, InstructionsFile) }

// Readme returns the path to README.md.
func (l Layout) Readme() string { return filepath.Join(l.Root, ReadmeFile) }

// MCP returns the path to .mcp.json.
func (l Layout) MCP() string { return filepath.Join(l.Root, MCPFile) }

// ConfigDir returns the path to the hidden .claude directory.
func (l Layout) ConfigDir() string { return filepath.Join(l.Root, ConfigDir) }

// Settings returns the path to .claude/settings.json.
func (l Layout) Settings() string { return filepath.Join(l.Root, ConfigDir, SettingsFile) }

// SkillDir returns the directory holding the self-update skill.
func (l Layout) SkillDir() string {
	return filepath.Join(l.Root, ConfigDir, SkillsDir, SelfUpdateSkill)
}

// Skill returns the path to .claude/skills/self-update/SKILL.md.
func (l Layout) Skill() string { return filepath.Join(l.SkillDir(), SkillFile) }

// SkillRelPath is the slash-separated skill path used in messages.
func SkillRelPath() string {
	return ConfigDir + "/" + SkillsDir + "/" + SelfUpdateSkill + "/" + SkillFile
}
