package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"repo2md/pkg/tokens"
)

// Config holds user settings. Command-line flags override these values.
type Config struct {
	Exclude        []string `yaml:"exclude" toml:"exclude"`
	UseGitignore   bool     `yaml:"use_gitignore" toml:"use_gitignore"`
	Redact         bool     `yaml:"redact" toml:"redact"`
	Format         string   `yaml:"format" toml:"format"`
	TokenEncoding  string   `yaml:"token_encoding" toml:"token_encoding"`
	TokenThreshold int      `yaml:"token_threshold" toml:"token_threshold"`
	MaxFileSizeKB  int64    `yaml:"max_file_size_kb" toml:"max_file_size_kb"`
	LogFile        string   `yaml:"log_file" toml:"log_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude: []string{
			// Dependency, build, cache and virtualenv directories. Dot-directories
			// are always skipped by the scanner.
			"node_modules/", "bower_components/", "jspm_packages/", "vendor/", "composer/", "packages/",
			"out/", "dist/", "build/", "target/", "bin/", "obj/", "output/", "release/", "debug/",
			"cache/", "tmp/", "temp/", "logs/", "log/", "coverage/",
			"venv/", "env/", "__pycache__/",
			"*.o",
			"*.so",
			"*.exe",
			"*.tmp",
			"*.swp",
			"*.log",
			"Thumbs.db",
		},
		UseGitignore:   true,
		Format:         "md",
		TokenEncoding:  tokens.DefaultEncoding,
		TokenThreshold: tokens.DefaultThreshold,
	}
}

// DefaultPath is ~/.config/repo2md/config.yaml, or empty when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "repo2md", "config.yaml")
}

// LoadConfig reads YAML, or TOML when path ends in .toml. Keys absent from the
// file keep their defaults. A missing file yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	// Initialize Exclude slice if nil (for empty lists)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if cfg.TokenThreshold < 0 {
		return nil, fmt.Errorf("token_threshold must not be negative, got %d", cfg.TokenThreshold)
	}
	if cfg.MaxFileSizeKB < 0 {
		return nil, fmt.Errorf("max_file_size_kb must not be negative, got %d", cfg.MaxFileSizeKB)
	}

	return cfg, nil
}

// MaxFileSize converts MaxFileSizeKB to bytes.
func (c *Config) MaxFileSize() int64 {
	return c.MaxFileSizeKB * 1024
}
