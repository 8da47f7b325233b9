package export

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; color: #24292f; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; border-radius: 6px; }
code { font-family: ui-monospace, Menlo, Consolas, monospace; font-size: 0.9em; }
h3 { border-bottom: 1px solid #d0d7de; padding-bottom: 0.3rem; }
</style>
</head>
<body>
%s</body>
</html>
`

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts the Markdown doc and wraps it in a styled page.
func RenderHTML(w io.Writer, title, doc string) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(doc), &body); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, pageTemplate, html.EscapeString(title), body.String())
	return err
}
