package decode

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBytes(t *testing.T) {
	testCases := []struct {
		name     string
		input    []byte
		expected string
		encoding Encoding
	}{
		{"ascii", []byte("hello"), "hello", UTF8},
		{"utf8 multibyte", []byte("héllo 世界"), "héllo 世界", UTF8},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1")...), "x = 1", UTF8},
		// "中文" in GBK
		{"gbk", []byte{0xD6, 0xD0, 0xCE, 0xC4}, "中文", GBK},
		// 0xE9 alone is invalid UTF-8 and a truncated GBK lead byte
		{"latin1", []byte("caf\xe9"), "café", Latin1},
		{"empty", []byte{}, "", UTF8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, enc := DecodeBytes(tc.input)
			assert.Equal(t, tc.expected, text)
			assert.Equal(t, tc.encoding, enc)
		})
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xD6, 0xD0, 0xCE, 0xC4}, 0644))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "中文", text)
}

func TestReadText_Missing(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
