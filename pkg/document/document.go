// Package document assembles selected project files into one Markdown document.
package document

import (
	"context"
	"fmt"
	"strings"

	"repo2md/pkg/redact"
	"repo2md/pkg/scan"
	"repo2md/pkg/task"

	"go.uber.org/zap"
)

// EmptyContentsMarker replaces the file contents section when nothing is selected.
const EmptyContentsMarker = "*(nothing selected)*"

// Request describes one document build.
type Request struct {
	RootName string                // Base name of the project root.
	Paths    []string              // Selected relative paths in output order.
	Entries  map[string]scan.Entry // Scan entries keyed by relative path.
	Redact   bool                  // Apply the redactor to decoded file text.
}

// Progress is reported once per file before it is processed.
type Progress struct {
	Index int // 1-based.
	Total int
	Path  string
}

func (p Progress) String() string {
	return fmt.Sprintf("(%d/%d) %s", p.Index, p.Total, p.Path)
}

// Options configures Build.
type Options struct {
	Redactor   *redact.Redactor // Used when Request.Redact is set; defaults to redact.Default().
	OnProgress func(Progress)
	Logger     *zap.Logger
}

// Build renders the project header, directory tree and one fenced section per
// selected file. Files are read sequentially; unreadable and binary files get
// an inline placeholder and never abort the build. Only ctx cancellation
// returns an error.
func Build(ctx context.Context, req Request, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	redactor := opts.Redactor
	if req.Redact && redactor == nil {
		redactor = redact.Default()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Project: %s\n\n", req.RootName)
	b.WriteString("## Directory Structure\n\n")
	b.WriteString("```\n")
	b.WriteString(RenderTree(req.RootName, req.Paths))
	b.WriteString("```\n\n")

	if len(req.Paths) == 0 {
		b.WriteString(EmptyContentsMarker + "\n")
		logger.Info("Generated document with empty selection", zap.String("root", req.RootName))
		return b.String(), nil
	}

	b.WriteString("## File Contents\n")
	total := len(req.Paths)
	for i, relPath := range req.Paths {
		if err := ctx.Err(); err != nil {
			logger.Warn("Document generation cancelled", zap.Int("processed", i), zap.Int("total", total))
			return "", fmt.Errorf("document generation cancelled: %w", err)
		}
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Index: i + 1, Total: total, Path: relPath})
		}

		var r *redact.Redactor
		if req.Redact {
			r = redactor
		}
		b.WriteString("\n")
		b.WriteString(renderFileSection(relPath, req.Entries, r, logger))
	}

	logger.Info("Generated document",
		zap.String("root", req.RootName),
		zap.Int("files", total),
		zap.Int("lengthBytes", b.Len()))
	return b.String(), nil
}

// Start runs Build on its own goroutine. OnProgress is called from that goroutine.
func Start(ctx context.Context, req Request, opts Options) *task.Future[string] {
	return task.Go(ctx, func(ctx context.Context) (string, error) {
		return Build(ctx, req, opts)
	})
}
