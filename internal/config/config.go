package config

import (
	"os"
	"path/filepath"

	"github.com/This-Machine-AI/loving-grace/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the tools.
const (
	KeyMachinesDir  = "machines_dir"
	KeyTemplatesDir = "templates_dir"
)

// Default values used when neither the config file nor the environment set a key.
const (
	DefaultMachinesDir  = "machines"
	DefaultTemplatesDir = "assets/templates"
)

// Dir returns the path to the config directory (~/.machine-creator/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.machine-creator/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetDefault(KeyMachinesDir, DefaultMachinesDir)
	viper.SetDefault(KeyTemplatesDir, DefaultTemplatesDir)

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// MachinesDir returns the default parent directory for new machines.
func MachinesDir() string {
	return Get(KeyMachinesDir)
}

// TemplatesDir returns the directory that holds named machine templates.
func TemplatesDir() string {
	return Get(KeyTemplatesDir)
}
