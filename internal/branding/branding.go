// Package branding provides compile-time identity values for the machine
// creator tools. branding.yaml is baked into both binaries with //go:embed;
// hard defaults apply when a key is missing.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	InitCLIName     string `yaml:"init_cli_name"`
	ValidateCLIName string `yaml:"validate_cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	WorkspacePath   string `yaml:"workspace_path"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			InitCLIName:     "init-machine",
			ValidateCLIName: "validate-machine",
			DisplayName:     "Machine Creator",
			Description:     "Scaffold and validate machine templates",
			HomeDir:         ".machine-creator",
			EnvPrefix:       "MACHINE_CREATOR",
			WorkspacePath:   "/home/user/workspace",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// InitCLIName returns the creator command name (e.g., "init-machine").
func InitCLIName() string { load(); return defaults.InitCLIName }

// ValidateCLIName returns the validator command name (e.g., "validate-machine").
func ValidateCLIName() string { load(); return defaults.ValidateCLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".machine-creator").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "MACHINE_CREATOR").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// WorkspacePath returns the sandbox workspace path documented in generated
// instructions files.
func WorkspacePath() string { load(); return defaults.WorkspacePath }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("path") → "MACHINE_CREATOR_PATH".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
