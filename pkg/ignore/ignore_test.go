package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\nbuild/\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, LocalIgnoreFile), []byte("# local\nsecrets.txt\n"), 0644))

	gi, err := LoadIgnoreFiles(root, true, []string{"*.tmp"}, nil)
	require.NoError(t, err)

	assert.True(t, gi.MatchesPath("debug.log"))
	assert.True(t, gi.MatchesPath("nested/trace.log"))
	assert.True(t, gi.MatchesPath("build/out.bin"))
	assert.True(t, gi.MatchesPath("secrets.txt"))
	assert.True(t, gi.MatchesPath("cache.tmp"))
	assert.False(t, gi.MatchesPath("main.go"))
}

func TestLoadIgnoreFiles_WithoutGitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\n"), 0644))

	gi, err := LoadIgnoreFiles(root, false, nil, nil)
	require.NoError(t, err)
	assert.False(t, gi.MatchesPath("debug.log"))
	assert.Equal(t, 0, gi.Len())
}

func TestMatchesPath_Empty(t *testing.T) {
	var gi *GitIgnore
	assert.False(t, gi.MatchesPath("anything"))
	assert.False(t, NewGitIgnore(nil).MatchesPath("anything"))
}

func TestCompileIgnoreLines_Negation(t *testing.T) {
	gi := NewGitIgnore(nil)
	gi.CompileIgnoreLines("*.md", "!README.md")

	assert.True(t, gi.MatchesPath("CHANGELOG.md"))
	assert.False(t, gi.MatchesPath("README.md"))
}
