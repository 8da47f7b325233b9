package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.UseGitignore)
}

func TestDefaultConfig_Excludes(t *testing.T) {
	cfg := DefaultConfig()
	for _, dir := range []string{"node_modules/", "bower_components/", "build/", "target/", "out/", "venv/", "env/", "coverage/"} {
		assert.Contains(t, cfg.Exclude, dir)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
exclude:
  - "*.lock"
redact: true
format: html
max_file_size_kb: 256
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"*.lock"}, cfg.Exclude)
	assert.True(t, cfg.Redact)
	assert.Equal(t, "html", cfg.Format)
	assert.Equal(t, int64(256*1024), cfg.MaxFileSize())
	// untouched keys keep defaults
	assert.True(t, cfg.UseGitignore)
	assert.Equal(t, "cl100k_base", cfg.TokenEncoding)
	assert.Equal(t, 128000, cfg.TokenThreshold)
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
exclude = []
use_gitignore = false
token_threshold = 5000
log_file = "/tmp/repo2md.log"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Exclude)
	assert.False(t, cfg.UseGitignore)
	assert.Equal(t, 5000, cfg.TokenThreshold)
	assert.Equal(t, "/tmp/repo2md.log", cfg.LogFile)
	assert.Equal(t, "md", cfg.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "c.yaml", "exclude: [unclosed"},
		{"bad toml", "c.toml", "exclude = ["},
		{"negative threshold", "c.yml", "token_threshold: -1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.file, tc.content))
			assert.Error(t, err)
		})
	}
}
