// Package config provides configuration management for counterpart.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/sivchari/counterpart/internal/rules"
)

// Open modes.
const (
	OpenPrint  = "print"
	OpenEditor = "editor"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// globalRelPath is the config location under $XDG_CONFIG_HOME.
const globalRelPath = "counterpart/config.yaml"

// localCandidates are tried in the working directory, in order.
var localCandidates = []string{
	".counterpart.yaml",
	".counterpart.yml",
	".counterpart.toml",
	".counterpart.json",
}

// ErrInvalidConfig indicates configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the configuration for counterpart.
type Config struct {
	// General settings
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty" toml:"verbose,omitempty"`
	Count   int  `yaml:"count,omitempty" json:"count,omitempty" toml:"count,omitempty"`

	// Rule sources
	Rules RulesConfig `yaml:"rules" json:"rules" toml:"rules"`

	// How a resolved counterpart is handed to the editor
	Open OpenConfig `yaml:"open,omitempty" json:"open,omitempty" toml:"open,omitempty"`

	// Output settings
	Output OutputConfig `yaml:"output,omitempty" json:"output,omitempty" toml:"output,omitempty"`
}

// RulesConfig selects which rule sets are used and in which order.
type RulesConfig struct {
	// ProjectFile enables lookup of a .counterpart file above the edited file.
	ProjectFile bool `yaml:"projectFile" json:"projectFile" toml:"projectFile"`
	// Builtin appends the built-in rule set after all other rules.
	Builtin bool `yaml:"builtin" json:"builtin" toml:"builtin"`
	// Extra rules are tried after project rules and before built-in rules.
	Extra rules.Set `yaml:"extra,omitempty" json:"extra,omitempty" toml:"extra,omitempty"`
}

// OpenConfig contains host integration settings.
type OpenConfig struct {
	Mode    string `yaml:"mode,omitempty" json:"mode,omitempty" toml:"mode,omitempty"`
	Command string `yaml:"command,omitempty" json:"command,omitempty" toml:"command,omitempty"`
}

// OutputConfig contains listing output settings.
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty" toml:"format,omitempty"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Count: 1,
		Rules: RulesConfig{
			ProjectFile: true,
			Builtin:     true,
		},
		Open: OpenConfig{
			Mode: OpenPrint,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Load loads configuration from file, falling back to defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	// If no config file specified, try default locations
	if configFile == "" {
		configFile = findConfigFile()
	}

	if configFile != "" {
		if err := cfg.loadFromFile(configFile); err != nil {
			return nil, err
		}
	}

	cfg.validate()

	return cfg, nil
}

// findConfigFile returns the first local config file, then the global one.
func findConfigFile() string {
	for _, candidate := range localCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if global, err := xdg.SearchConfigFile(globalRelPath); err == nil {
		return global
	}

	return ""
}

// GlobalPath returns the user-wide config path, creating its directory.
func GlobalPath() (string, error) {
	path, err := xdg.ConfigFile(globalRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve global config path: %w", err)
	}

	return path, nil
}

// validate fills in sensible values for unset fields.
func (c *Config) validate() {
	if c.Count <= 0 {
		c.Count = 1
	}

	if c.Open.Mode == "" {
		c.Open.Mode = OpenPrint
	}

	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	switch c.Open.Mode {
	case OpenPrint, OpenEditor:
	default:
		return fmt.Errorf("%w: unknown open mode %q", ErrInvalidConfig, c.Open.Mode)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}

	if err := rules.Validate(c.Rules.Extra); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// formatOf derives the file format from the file extension.
func formatOf(filename string) string {
	switch filepath.Ext(filename) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
