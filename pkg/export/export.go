// Package export writes a generated document to disk as Markdown, HTML or PDF,
// or copies it to the system clipboard.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an output format.
type Format string

const (
	Markdown Format = "md"
	HTML     Format = "html"
	PDF      Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{Markdown, HTML, PDF}

// ParseFormat accepts a format name or a common alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, s, FormatNames())
}

// FormatNames joins Formats for help and error text.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Ext is the file extension without a dot.
func (f Format) Ext() string { return string(f) }

// DefaultFileName builds <root>_<YYYYMMDD>.<ext>.
func DefaultFileName(root string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", root, now.Format("20060102"), format.Ext())
}

// Write renders doc in the given format to w. title is used by HTML only.
func Write(w io.Writer, format Format, title, doc string) error {
	switch format {
	case Markdown:
		_, err := io.WriteString(w, doc)
		return err
	case HTML:
		return RenderHTML(w, title, doc)
	case PDF:
		return RenderPDF(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// WriteFile renders doc to path, replacing any existing file.
func WriteFile(path string, format Format, title, doc string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	if err := Write(f, format, title, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s output to %s: %w", format, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", path, err)
	}
	return nil
}

// WriteMarkdown writes doc verbatim.
func WriteMarkdown(path, doc string) error {
	return WriteFile(path, Markdown, "", doc)
}

// WriteHTML converts doc to a standalone HTML page.
func WriteHTML(path, title, doc string) error {
	return WriteFile(path, HTML, title, doc)
}

// WritePDF lays doc out as monospaced text.
func WritePDF(path, doc string) error {
	return WriteFile(path, PDF, "", doc)
}

// Copy places doc on the system clipboard.
func Copy(doc string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(doc); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
