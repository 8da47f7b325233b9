// Package decode turns file bytes into text, trying a fixed chain of encodings.
package decode

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Encoding names the decoder that produced a text.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	GBK    Encoding = "gbk"
	Latin1 Encoding = "latin-1"
	Lossy  Encoding = "utf-8-lossy"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// legacy is tried in order after UTF-8.
var legacy = []struct {
	name Encoding
	enc  encoding.Encoding
}{
	{GBK, simplifiedchinese.GBK},
	{Latin1, charmap.ISO8859_1},
}

// ReadText reads the file at path and decodes it. Only I/O errors are returned.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, _ := DecodeBytes(data)
	return text, nil
}

// DecodeBytes returns the first clean decoding of data and the encoding used.
func DecodeBytes(data []byte) (string, Encoding) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), UTF8
	}

	for _, l := range legacy {
		out, err := l.enc.NewDecoder().Bytes(data)
		// x/text decoders substitute U+FFFD instead of failing; treat that as a miss.
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return string(out), l.name
	}

	return strings.ToValidUTF8(string(data), ""), Lossy
}
