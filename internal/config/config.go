package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the persisted belegwerk configuration.
type Config struct {
	CompanyName        string            `yaml:"company_name"`
	Model              string            `yaml:"model"`
	Concurrency        int               `yaml:"concurrency"`
	Limit              int               `yaml:"limit"`
	CustomPromptSuffix string            `yaml:"custom_prompt_suffix,omitempty"`
	Directories        DirectoriesConfig `yaml:"directories"`
}

// DirectoriesConfig holds the working directory layout.
type DirectoriesConfig struct {
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Archive string `yaml:"archive"`
	Logs    string `yaml:"logs"`
}

// DefaultPath returns the config file location, ~/.belegwerk/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".belegwerk", "config.yaml")
	}
	return filepath.Join(home, ".belegwerk", "config.yaml")
}

// Load reads a config.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// LoadOrDefault reads the config file, falling back to defaults when the
// file is missing or unreadable. Configuration problems never abort a run.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes a Config to a YAML file, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock defaults.
func Default() *Config {
	return &Config{
		Model:       "gemini-2.5-flash",
		Concurrency: 4,
		Limit:       0,
		Directories: DirectoriesConfig{
			Input:   "downloads",
			Output:  "benannt",
			Archive: "verarbeitet",
			Logs:    "logs",
		},
	}
}

// fillDefaults repairs missing or malformed values instead of failing.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.Limit < 0 {
		c.Limit = 0
	}
	if c.Directories.Input == "" {
		c.Directories.Input = def.Directories.Input
	}
	if c.Directories.Output == "" {
		c.Directories.Output = def.Directories.Output
	}
	if c.Directories.Archive == "" {
		c.Directories.Archive = def.Directories.Archive
	}
	if c.Directories.Logs == "" {
		c.Directories.Logs = def.Directories.Logs
	}
}
