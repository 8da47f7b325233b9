package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"repo2md/pkg/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// setupTestDir writes files under a temp directory and scans it.
func setupTestDir(t *testing.T, files map[string]string) *scan.Result {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	res, err := scan.Scan(context.Background(), root, scan.Options{})
	require.NoError(t, err)
	return res
}

func TestBuild_TextAndBinary(t *testing.T) {
	res := setupTestDir(t, map[string]string{
		"a/b.txt":    "hi",
		"a/logo.png": string(pngHeader),
	})

	var events []Progress
	doc, err := Build(context.Background(), Request{
		RootName: "proj",
		Paths:    []string{"a/b.txt", "a/logo.png"},
		Entries:  res.Entries,
	}, Options{OnProgress: func(p Progress) { events = append(events, p) }})
	require.NoError(t, err)

	expected := "# Project: proj\n\n" +
		"## Directory Structure\n\n" +
		"```\n" +
		"proj/\n" +
		"└── a/\n" +
		"    ├── b.txt\n" +
		"    └── logo.png\n" +
		"```\n\n" +
		"## File Contents\n\n" +
		"### a/b.txt\n\n" +
		"```txt\nhi\n```\n\n" +
		"### a/logo.png\n\n" +
		"```\n[binary file skipped: extension .png is blacklisted]\n```\n"
	assert.Equal(t, expected, doc)

	assert.Equal(t, []Progress{
		{Index: 1, Total: 2, Path: "a/b.txt"},
		{Index: 2, Total: 2, Path: "a/logo.png"},
	}, events)
	assert.Equal(t, "(1/2) a/b.txt", events[0].String())
}

func TestBuild_MagicBytesPlaceholder(t *testing.T) {
	res := setupTestDir(t, map[string]string{"image.data": string(pngHeader)})

	doc, err := Build(context.Background(), Request{
		RootName: "proj",
		Paths:    []string{"image.data"},
		Entries:  res.Entries,
	}, Options{})
	require.NoError(t, err)
	assert.Contains(t, doc, "[binary file skipped: magic bytes PNG]")
}

func TestBuild_EmptySelection(t *testing.T) {
	doc, err := Build(context.Background(), Request{RootName: "proj"}, Options{})
	require.NoError(t, err)

	assert.Contains(t, doc, "proj/\n└── (nothing selected)\n")
	assert.Contains(t, doc, EmptyContentsMarker)
	assert.NotContains(t, doc, "## File Contents")
	assert.NotContains(t, doc, "###")
}

func TestBuild_Redaction(t *testing.T) {
	res := setupTestDir(t, map[string]string{"config.ini": "password = hunter2\n"})
	req := Request{RootName: "proj", Paths: []string{"config.ini"}, Entries: res.Entries}

	testCases := []struct {
		name    string
		redact  bool
		want    string
		notWant string
	}{
		{"enabled", true, "password = [REDACTED]", "hunter2"},
		{"disabled", false, "password = hunter2", "[REDACTED]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req.Redact = tc.redact
			doc, err := Build(context.Background(), req, Options{})
			require.NoError(t, err)
			assert.Contains(t, doc, tc.want)
			assert.NotContains(t, doc, tc.notWant)
		})
	}
}

func TestBuild_ReadFailures(t *testing.T) {
	res := setupTestDir(t, map[string]string{"gone.txt": "bye", "ok.txt": "ok"})
	require.NoError(t, os.Remove(res.Entries["gone.txt"].AbsPath))

	doc, err := Build(context.Background(), Request{
		RootName: "proj",
		Paths:    []string{"gone.txt", "missing.txt", "ok.txt"},
		Entries:  res.Entries,
	}, Options{})
	require.NoError(t, err)

	assert.Contains(t, doc, "### gone.txt\n\n```\n[binary file skipped: read failed:")
	assert.Contains(t, doc, "### missing.txt\n\n```\n[read failed: not found in scan results]\n```")
	assert.Contains(t, doc, "```txt\nok\n```")
}

func TestBuild_NestedFence(t *testing.T) {
	res := setupTestDir(t, map[string]string{"README.md": "```go\nx := 1\n```\n"})

	doc, err := Build(context.Background(), Request{
		RootName: "proj",
		Paths:    []string{"README.md"},
		Entries:  res.Entries,
	}, Options{})
	require.NoError(t, err)
	assert.Contains(t, doc, "````md\n```go\nx := 1\n```\n````\n")
}

func TestBuild_Cancelled(t *testing.T) {
	res := setupTestDir(t, map[string]string{"a.txt": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, Request{RootName: "proj", Paths: []string{"a.txt"}, Entries: res.Entries}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStart(t *testing.T) {
	res := setupTestDir(t, map[string]string{"Makefile": "all:\n"})

	doc, err := Start(context.Background(), Request{
		RootName: "proj",
		Paths:    []string{"Makefile"},
		Entries:  res.Entries,
	}, Options{}).Wait()
	require.NoError(t, err)
	assert.True(t, strings.Contains(doc, "### Makefile\n\n```\nall:\n```"))
}
