package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output format names accepted in config files and on the command line.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the complete configuration for jsonmend
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Keys     KeysConfig     `yaml:"keys"`
	Recovery RecoveryConfig `yaml:"recovery"`
	Dev      DevConfig      `yaml:"dev"`
}

// OutputConfig controls how recovered values are rendered
type OutputConfig struct {
	Format  string `yaml:"format"`
	Indent  int    `yaml:"indent"`
	Compact bool   `yaml:"compact"`
}

// KeysConfig controls object key rewriting
type KeysConfig struct {
	// Style is one of "", "camel", "pascal", "snake", "kebab".
	Style string `yaml:"style"`
}

// RecoveryConfig controls how recoveries are reported
type RecoveryConfig struct {
	Quiet           bool `yaml:"quiet"`
	FailOnRemainder bool `yaml:"fail_on_remainder"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:  FormatJSON,
			Indent:  2,
			Compact: false,
		},
		Keys: KeysConfig{
			Style: "",
		},
		Recovery: RecoveryConfig{
			Quiet:           false,
			FailOnRemainder: false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonmend.yml", ".jsonmend.yaml", "jsonmend.yml", "jsonmend.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that config values are usable
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid output format '%s': must be %s or %s", c.Output.Format, FormatJSON, FormatYAML)
	}

	switch c.Keys.Style {
	case "", "camel", "pascal", "snake", "kebab":
	default:
		return fmt.Errorf("invalid key style '%s': must be camel, pascal, snake or kebab", c.Keys.Style)
	}

	if c.Output.Indent < 0 {
		return fmt.Errorf("invalid indent %d: must be zero or positive", c.Output.Indent)
	}

	return nil
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// CLI values override file values only when they differ from the defaults,
// so a config file still applies when a flag is left unset.
func LoadConfigWithCLI(configPath, cliFormat, cliKeys string, cliIndent int, cliCompact, cliQuiet, cliFailOnRemainder bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	defaults := NewConfig()
	if cliFormat != "" && cliFormat != defaults.Output.Format {
		cfg.Output.Format = cliFormat
	}
	if cliKeys != "" {
		cfg.Keys.Style = cliKeys
	}
	if cliIndent != defaults.Output.Indent {
		cfg.Output.Indent = cliIndent
	}
	if cliCompact {
		cfg.Output.Compact = true
	}
	if cliQuiet {
		cfg.Recovery.Quiet = true
	}
	if cliFailOnRemainder {
		cfg.Recovery.FailOnRemainder = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
