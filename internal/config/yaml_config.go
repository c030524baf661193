package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// loadFromFile decodes filename over the current values.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch formatOf(filename) {
	case "toml":
		err = toml.Unmarshal(data, c)
	case "json":
		err = json.Unmarshal(data, c)
	default:
		err = yaml.Unmarshal(data, c)
	}

	if err != nil {
		return fmt.Errorf("failed to parse %s config file: %w", formatOf(filename), err)
	}

	return nil
}

// Marshal encodes the configuration in the given file format.
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "toml":
		return toml.Marshal(c)
	case "json":
		return json.MarshalIndent(c, "", "  ")
	default:
		return yaml.Marshal(c)
	}
}

// Save saves the configuration to a file, choosing the format by extension.
func (c *Config) Save(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(formatOf(filename))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
