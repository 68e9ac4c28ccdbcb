package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/This-Machine-AI/loving-grace/internal/branding"
	"github.com/This-Machine-AI/loving-grace/internal/config"
	"github.com/This-Machine-AI/loving-grace/internal/machine"
	"github.com/This-Machine-AI/loving-grace/internal/scaffold"
)

type initOptions struct {
	path         string
	template     string
	templatesDir string
	force        bool
}

func newInitMachineCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   branding.InitCLIName() + " <name>",
		Short: "Initialize a new machine template",
		Long: `Initialize a new machine template with the standard directory structure:
CLAUDE.md, .claude/settings.json, .claude/skills/self-update/SKILL.md,
.mcp.json, and README.md. With --template, an existing template directory is
copied instead.

Examples:
  init-machine my-assistant --path machines/
  init-machine code-reviewer --path machines/ --template code-reviewer
  init-machine custom-bot --path /tmp --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitMachine(console{w: cmd.OutOrStdout()}, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.path, "path", "", "Parent directory for the machine (default: machines/)")
	cmd.Flags().StringVar(&opts.template, "template", "", "Template to use (e.g., code-reviewer, research-assistant)")
	cmd.Flags().StringVar(&opts.templatesDir, "templates-dir", "", "Directory holding named templates (default: assets/templates)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite existing directory")
	applyCommon(cmd)
	return cmd
}

func runInitMachine(out console, name string, opts *initOptions) error {
	config.Load()

	parent := opts.path
	if parent == "" {
		parent = config.MachinesDir()
	}
	parent, err := filepath.Abs(parent)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", parent, err)
	}
	if _, statErr := os.Stat(parent); os.IsNotExist(statErr) {
		out.println("Creating output directory: " + parent)
		if err := os.MkdirAll(parent, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", parent, err)
		}
	}

	templatesDir := opts.templatesDir
	if templatesDir == "" {
		templatesDir = config.TemplatesDir()
	}
	log.Debug("Creating machine", "name", name, "parent", parent, "template", opts.template, "templates", templatesDir)

	result, err := scaffold.Create(scaffold.Options{
		Name:         name,
		ParentDir:    parent,
		Template:     opts.template,
		TemplatesDir: templatesDir,
		Force:        opts.force,
	})
	if err != nil {
		reportCreateError(out, name, err)
		return errReported
	}

	printCreateResult(out, parent, name, result)
	return nil
}

func reportCreateError(out console, name string, err error) {
	var notFound *scaffold.TemplateNotFoundError
	switch {
	case errors.Is(err, scaffold.ErrInvalidName):
		out.error("Invalid machine name: '%s'", name)
		out.hint("Machine names must be lowercase, hyphenated, and start with a letter")
		out.hint("Examples: code-reviewer, data-analyst, my-custom-machine")
	case errors.As(err, &notFound):
		out.error("Template not found: %s", notFound.Template)
		if len(notFound.Available) > 0 {
			out.hint("Available templates: %s", strings.Join(notFound.Available, ", "))
		}
	case errors.Is(err, scaffold.ErrAlreadyExists):
		out.error("%v", err)
		out.hint("Use --force to overwrite")
	default:
		out.error("Error creating machine: %v", err)
	}
}

func printCreateResult(out console, parent, name string, result *scaffold.Result) {
	if result.Replaced {
		out.warning("Replaced existing directory: %s", result.OutputDir)
	}

	if result.Template != "" {
		out.println("Using template: " + result.Template)
		out.success("Created machine from template: %s", result.OutputDir)
	} else {
		for _, f := range result.Files {
			out.success("Created %s", filepath.Join(name, filepath.FromSlash(f)))
		}
		out.println()
		out.success("Machine initialized successfully: %s", result.OutputDir)
	}

	if len(result.Warnings) > 0 {
		out.println("\nWarnings:")
		for _, w := range result.Warnings {
			out.warning("%s", w)
		}
	}

	if result.Template != "" {
		return
	}
	out.println("\nNext steps:")
	out.printf("  1. Edit %s/%s to define the machine's persona\n", name, machine.InstructionsFile)
	out.printf("  2. Configure permissions in %s/%s/%s\n", name, machine.ConfigDir, machine.SettingsFile)
	out.printf("  3. Add MCP servers in %s/%s if needed\n", name, machine.MCPFile)
	out.printf("  4. Update %s/%s with documentation\n", name, machine.ReadmeFile)
	out.printf("  5. Run '%s %s' to check the result\n", branding.ValidateCLIName(), filepath.Join(parent, name))
}
