package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFontSize   = 8.0
	pdfLineHeight = 3.6
)

// boxDrawing maps tree glyphs outside cp1252 to ASCII.
var boxDrawing = strings.NewReplacer(
	"├── ", "|-- ",
	"└── ", "`-- ",
	"│   ", "|   ",
)

// RenderPDF writes doc as paginated Courier text on A4.
func RenderPDF(w io.Writer, doc string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	pdf.SetFont("Courier", "", pdfFontSize)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := strings.ReplaceAll(boxDrawing.Replace(doc), "\t", "    ")
	for _, line := range strings.Split(text, "\n") {
		pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
