package manifest

// Settings is the shape of .claude/settings.json.
type Settings struct {
	Permissions *Permissions `json:"permissions,omitempty"`
}

// Permissions controls which tool invocations require user approval.
type Permissions struct {
	Allow       []string `json:"allow"`
	Deny        []string `json:"deny"`
	DefaultMode string   `json:"defaultMode,omitempty"`
}

// Conflicts returns the rules listed in both Allow and Deny, in Allow order.
func (p *Permissions) Conflicts() []string {
	denied := make(map[string]bool, len(p.Deny))
	for _, rule := range p.Deny {
		denied[rule] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, rule := range p.Allow {
		if denied[rule] && !seen[rule] {
			out = append(out, rule)
			seen[rule] = true
		}
	}
	return out
}

// MCPConfig is the shape of .mcp.json.
type MCPConfig struct {
	MCPServers map[string]MCPServer `json:"mcpServers"`
}

// MCPServer describes how to launch or reach one MCP server. Env values may
// reference secrets by name using ${NAME}.
type MCPServer struct {
	Type    string            `json:"type,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
}

// SkillFrontmatter is the YAML block at the top of a SKILL.md file.
type SkillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DefaultSettings returns the settings written into new machines: empty
// allow/deny lists and an unrestricted default mode.
func DefaultSettings(mode string) *Settings {
	return &Settings{
		Permissions: &Permissions{
			Allow:       []string{},
			Deny:        []string{},
			DefaultMode: mode,
		},
	}
}

// DefaultMCP returns an MCP manifest with no servers.
func DefaultMCP() *MCPConfig {
	return &MCPConfig{MCPServers: map[string]MCPServer{}}
}
