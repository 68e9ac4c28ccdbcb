package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"

	"github.com/This-Machine-AI/loving-grace/internal/branding"
	"github.com/This-Machine-AI/loving-grace/internal/machine"
	"github.com/This-Machine-AI/loving-grace/internal/manifest"
)

//go:embed scaffolds
var scaffoldFS embed.FS

const defaultSet = "scaffolds/machine"

// Input errors. Each is returned wrapped; test with errors.Is.
var (
	ErrInvalidName      = errors.New("invalid machine name")
	ErrAlreadyExists    = errors.New("directory already exists")
	ErrTemplateNotFound = errors.New("template not found")
)

// TemplateNotFoundError carries the template ids that do exist so callers
// can offer them as a hint.
type TemplateNotFoundError struct {
	Template  string
	Available []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.Template)
}

func (e *TemplateNotFoundError) Is(target error) bool { return target == ErrTemplateNotFound }

// MachineData holds all template variables available to scaffold templates.
type MachineData struct {
	Name             string // e.g., "demo-bot"
	Title            string // e.g., "Demo Bot"
	Persona          string // e.g., "demo bot"
	WorkspacePath    string // e.g., "/home/user/workspace"
	InstructionsFile string
	SettingsPath     string
	MCPFile          string
}

// NewMachineData creates a MachineData with derived fields populated.
func NewMachineData(name string) *MachineData {
	title := machine.Title(name)
	return &MachineData{
		Name:             name,
		Title:            title,
		Persona:          strings.ToLower(title),
		WorkspacePath:    branding.WorkspacePath(),
		InstructionsFile: machine.InstructionsFile,
		SettingsPath:     machine.ConfigDir + "/" + machine.SettingsFile,
		MCPFile:          machine.MCPFile,
	}
}

// Options configures a Create call.
type Options struct {
	Name         string
	ParentDir    string
	Template     string // empty generates the default file set
	TemplatesDir string // where named templates live
	Force        bool   // replace an existing machine directory
}

// Result holds the outcome of a machine creation.
type Result struct {
	OutputDir string
	Template  string
	Replaced  bool
	Files     []string // slash-separated, relative to OutputDir
	Warnings  []string
}

// Create builds a new machine at ParentDir/Name. Name and template are
// resolved before anything on disk is touched; an existing directory is only
// removed when Force is set.
func Create(opts Options) (*Result, error) {
	if !machine.ValidName(opts.Name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, opts.Name)
	}

	var templateDir string
	if opts.Template != "" {
		dir, err := ResolveTemplate(opts.TemplatesDir, opts.Template)
		if err != nil {
			return nil, err
		}
		templateDir = dir
	}

	outputDir := filepath.Join(opts.ParentDir, opts.Name)
	replaced, err := prepareTarget(outputDir, opts.Force)
	if err != nil {
		return nil, err
	}

	var result *Result
	if templateDir != "" {
		result, err = copyTemplate(templateDir, outputDir)
		if result != nil {
			result.Template = opts.Template
		}
	} else {
		result, err = generate(opts.Name, outputDir)
	}
	if err != nil {
		cleanup(outputDir)
		return nil, err
	}

	result.Replaced = replaced
	result.Warnings = append(result.Warnings, verify(outputDir)...)
	return result, nil
}

// CreateDefault generates the default file set for name under parentDir.
func CreateDefault(name, parentDir string, force bool) (*Result, error) {
	return Create(Options{Name: name, ParentDir: parentDir, Force: force})
}

// CreateFromTemplate copies the named template from templatesDir to parentDir/name.
func CreateFromTemplate(name, parentDir, templatesDir, templateID string, force bool) (*Result, error) {
	return Create(Options{
		Name:         name,
		ParentDir:    parentDir,
		Template:     templateID,
		TemplatesDir: templatesDir,
		Force:        force,
	})
}

// prepareTarget enforces the exists/overwrite rule for outputDir. It reports
// whether an existing directory was removed.
func prepareTarget(outputDir string, force bool) (bool, error) {
	if _, err := os.Lstat(outputDir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", outputDir, err)
	}

	if !force {
		return false, fmt.Errorf("%w: %s", ErrAlreadyExists, outputDir)
	}

	log.Debug("Removing existing directory", "path", outputDir)
	if err := os.RemoveAll(outputDir); err != nil {
		return false, fmt.Errorf("removing existing directory %s: %w", outputDir, err)
	}
	return true, nil
}

// artifact is one generated file, relative to the machine root.
type artifact struct {
	rel    string
	render func(*MachineData) ([]byte, error)
}

// artifacts lists the default files in the order they are written.
func artifacts() []artifact {
	return []artifact{
		{machine.InstructionsFile, renderTemplate("CLAUDE.md.tmpl")},
		{machine.ConfigDir + "/" + machine.SettingsFile, renderJSON(func() interface{} {
			return manifest.DefaultSettings(machine.DefaultPermissionMode)
		})},
		{machine.SkillRelPath(), renderStatic("SKILL.md")},
		{machine.MCPFile, renderJSON(func() interface{} { return manifest.DefaultMCP() })},
		{machine.ReadmeFile, renderTemplate("README.md.tmpl")},
	}
}

// generate writes the default file set. The caller removes outputDir on error.
func generate(name, outputDir string) (*Result, error) {
	layout := machine.NewLayout(outputDir)
	if err := os.MkdirAll(layout.SkillDir(), 0755); err != nil {
		return nil, fmt.Errorf("creating machine directories: %w", err)
	}

	data := NewMachineData(name)
	result := &Result{OutputDir: outputDir}

	for _, a := range artifacts() {
		content, err := a.render(data)
		if err != nil {
			return nil, err
		}

		outPath := filepath.Join(outputDir, filepath.FromSlash(a.rel))
		log.Debug("Writing file", "path", outPath, "bytes", len(content))
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", a.rel, err)
		}
		result.Files = append(result.Files, a.rel)
	}

	return result, nil
}

// renderTemplate executes an embedded Go template against the machine data.
func renderTemplate(file string) func(*MachineData) ([]byte, error) {
	return func(data *MachineData) ([]byte, error) {
		tmplBytes, err := fs.ReadFile(scaffoldFS, path.Join(defaultSet, file))
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", file, err)
		}

		tmpl, err := template.New(file).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", file, err)
		}
		return buf.Bytes(), nil
	}
}

// renderStatic returns an embedded file verbatim. The skill document shows
// literal ${VAR} and JSON snippets, so it is never run through text/template.
func renderStatic(file string) func(*MachineData) ([]byte, error) {
	return func(*MachineData) ([]byte, error) {
		b, err := fs.ReadFile(scaffoldFS, path.Join(defaultSet, file))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		return b, nil
	}
}

// renderJSON marshals a document with two-space indentation and a trailing newline.
func renderJSON(doc func() interface{}) func(*MachineData) ([]byte, error) {
	return func(*MachineData) ([]byte, error) {
		out, err := json.MarshalIndent(doc(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(out, '\n'), nil
	}
}

// cleanup removes a partially created machine directory.
func cleanup(outputDir string) {
	if _, err := os.Lstat(outputDir); err != nil {
		return
	}
	log.Debug("Cleaning up partial machine", "path", outputDir)
	if err := os.RemoveAll(outputDir); err != nil {
		log.Warn("Could not remove partial machine", "path", outputDir, "err", err)
	}
}
