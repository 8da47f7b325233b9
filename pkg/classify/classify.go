// File: pkg/classify/classify.go
package classify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// NoExtension is the extension token for files whose basename has no '.'.
const NoExtension = "[no-ext]"

// BinaryExtensions lists extensions that are never read as text.
var BinaryExtensions = map[string]bool{
	// images
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true, "ico": true, "webp": true,
	"svg": true, "cur": true, "icns": true, "psd": true, "ai": true, "eps": true, "sketch": true,
	// media
	"mp4": true, "mp3": true, "avi": true, "mov": true, "wmv": true, "flv": true, "webm": true,
	// documents
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
	// archives
	"zip": true, "rar": true, "7z": true, "tar": true, "gz": true, "bz2": true,
	"iso": true, "img": true, "dmg": true, "jar": true, "war": true,
	// executables and objects
	"exe": true, "dll": true, "so": true, "dylib": true, "class": true, "bin": true,
	// fonts
	"woff": true, "woff2": true, "ttf": true, "eot": true, "otf": true,
	// databases
	"dat": true, "db": true, "sqlite": true,
}

type magic struct {
	prefix []byte
	name   string
}

// magicNumbers is checked in order against the first bytes of a file.
var magicNumbers = []magic{
	{[]byte("%PDF"), "PDF"},
	{[]byte("\x89PNG"), "PNG"},
	{[]byte{0xFF, 0xD8, 0xFF}, "JPEG"},
	{[]byte("PK"), "ZIP"},
	{[]byte{0x1F, 0x8B}, "GZIP"},
}

const magicLen = 4

// Extension returns the lowercase token after the last '.' of the basename,
// or NoExtension when the basename has none.
func Extension(path string) string {
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	dot := strings.LastIndex(base, ".")
	if dot == -1 {
		return NoExtension
	}
	return strings.ToLower(base[dot+1:])
}

// IsBinary reports whether the file at path should be skipped as binary and why.
// A file that cannot be read is treated as binary.
func IsBinary(path string) (bool, string) {
	ext := Extension(path)
	if BinaryExtensions[ext] {
		return true, fmt.Sprintf("extension .%s is blacklisted", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return true, fmt.Sprintf("read failed: %v", err)
	}
	defer file.Close()

	header := make([]byte, magicLen)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return true, fmt.Sprintf("read failed: %v", err)
	}
	if n < magicLen {
		return false, ""
	}

	for _, m := range magicNumbers {
		if bytes.HasPrefix(header, m.prefix) {
			return true, "magic bytes " + m.name
		}
	}
	return false, ""
}
