package scaffold

import (
	"fmt"
	"os"

	"github.com/This-Machine-AI/loving-grace/internal/machine"
	"github.com/This-Machine-AI/loving-grace/internal/manifest"
)

// verify checks the configuration documents of a freshly created machine and
// returns human-readable warnings. Files that do not exist are skipped.
// Besides the schemas, permission rules that are both allowed and denied are
// reported.
func verify(outputDir string) []string {
	layout := machine.NewLayout(outputDir)
	var warnings []string

	checks := []struct {
		label  string
		path   string
		schema manifest.Schema
	}{
		{machine.ConfigDir + "/" + machine.SettingsFile, layout.Settings(), manifest.SchemaSettings},
		{machine.MCPFile, layout.MCP(), manifest.SchemaMCP},
	}
	for _, c := range checks {
		if _, err := os.Stat(c.path); err != nil {
			continue
		}
		result, err := manifest.ValidateFile(c.schema, c.path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: could not validate: %v", c.label, err))
			continue
		}
		for _, issue := range result.Issues {
			warnings = append(warnings, fmt.Sprintf("%s: %s", c.label, issue))
		}
	}

	if settings, err := manifest.ParseSettings(layout.Settings()); err == nil && settings.Permissions != nil {
		for _, rule := range settings.Permissions.Conflicts() {
			warnings = append(warnings, fmt.Sprintf("%s/%s: %q is both allowed and denied", machine.ConfigDir, machine.SettingsFile, rule))
		}
	}

	if _, err := os.Stat(layout.Skill()); err == nil {
		result, err := manifest.ValidateSkillFile(layout.Skill())
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: could not validate: %v", machine.SkillRelPath(), err))
		} else {
			for _, issue := range result.Issues {
				warnings = append(warnings, fmt.Sprintf("%s: %s", machine.SkillRelPath(), issue))
			}
		}
	}

	return warnings
}
