package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"repo2md/pkg/classify"
	"repo2md/pkg/document"
	"repo2md/pkg/export"
	"repo2md/pkg/progress"
	"repo2md/pkg/scan"
	"repo2md/pkg/tokens"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const maxSensitiveShown = 5

var (
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
)

// outputFlags control document generation and export.
type outputFlags struct {
	redact bool
	format string
	output string
	copy   bool
	force  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.redact, "redact", false, "mask passwords, keys and tokens (default from config)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: "+export.FormatNames()+" (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, '-' for stdout (default <root>_<date>.<ext>)")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "also copy the Markdown document to the clipboard")
	cmd.Flags().BoolVar(&f.force, "force", false, "overwrite the output file without asking")
}

// generator builds and exports documents for one command invocation.
type generator struct {
	flags  outputFlags
	redact bool
	format export.Format
	est    *tokens.Estimator
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

func newGenerator(cmd *cobra.Command, flags outputFlags) (*generator, error) {
	name := cfg.Format
	if flags.format != "" {
		name = flags.format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if flags.output == "-" && format == export.PDF {
		return nil, errors.New("pdf output cannot be written to stdout")
	}

	redact := cfg.Redact
	if cmd.Flags().Changed("redact") {
		redact = flags.redact
	}

	return &generator{
		flags:  flags,
		redact: redact,
		format: format,
		est:    tokens.New(cfg.TokenEncoding, logger),
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		stdin:  cmd.InOrStdin(),
	}, nil
}

// run builds the document for paths and writes it out.
func (g *generator) run(ctx context.Context, res *scan.Result, paths []string) error {
	paths = g.withoutOutput(res, paths)
	g.warnSensitive(paths)

	bar := progress.New()
	doc, err := document.Start(ctx, document.Request{
		RootName: res.RootName(),
		Paths:    paths,
		Entries:  res.Entries,
		Redact:   g.redact,
	}, document.Options{
		OnProgress: bar.Update,
		Logger:     logger,
	}).Wait()
	bar.Finish()
	if err != nil {
		return err
	}

	var size int64
	for _, p := range paths {
		size += res.Entries[p].Size
	}
	n := g.est.Estimate(doc)
	fmt.Fprintf(g.stderr, "Selected %d files (%s), ~%d tokens (%s)\n", len(paths), scan.FormatBytes(size), n, g.est.Encoding())
	if tokens.Exceeds(n, cfg.TokenThreshold) {
		errColor.Fprintf(g.stderr, "Warning: document exceeds the %d token threshold\n", cfg.TokenThreshold)
	}

	if err := g.write(res.RootName(), doc); err != nil {
		return err
	}

	if g.flags.copy {
		if err := export.Copy(doc); err != nil {
			warnColor.Fprintf(g.stderr, "Warning: %v\n", err)
			logger.Warn("Clipboard copy failed", zap.Error(err))
		} else {
			okColor.Fprintln(g.stderr, "Copied to clipboard")
		}
	}
	return nil
}

func (g *generator) write(rootName, doc string) error {
	if g.flags.output == "-" {
		return export.Write(g.stdout, g.format, rootName, doc)
	}

	path := g.outputPath(rootName)
	if ok, err := g.confirmOverwrite(path); err != nil {
		return err
	} else if !ok {
		warnColor.Fprintf(g.stderr, "Skipped writing %s\n", path)
		return nil
	}

	if err := export.WriteFile(path, g.format, rootName, doc); err != nil {
		logger.Error("Export failed", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Info("Document exported", zap.String("path", path), zap.String("format", string(g.format)))
	okColor.Fprintf(g.stderr, "Wrote %s\n", path)
	return nil
}

// outputPath is the file the document is written to, or "" for stdout.
func (g *generator) outputPath(rootName string) string {
	switch g.flags.output {
	case "-":
		return ""
	case "":
		return export.DefaultFileName(rootName, g.format, time.Now())
	}
	return g.flags.output
}

// withoutOutput drops the output file itself from paths so a previous
// export is never concatenated into the next one.
func (g *generator) withoutOutput(res *scan.Result, paths []string) []string {
	out := g.outputPath(res.RootName())
	if out == "" {
		return paths
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return paths
	}
	kept := paths[:0:0]
	for _, p := range paths {
		if res.Entries[p].AbsPath == abs {
			logger.Debug("Skipping previous export", zap.String("path", p))
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// confirmOverwrite asks before replacing an existing file when stdin is a terminal.
func (g *generator) confirmOverwrite(path string) (bool, error) {
	if g.flags.force {
		return true, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if f, ok := g.stdin.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return true, nil
	}
	return promptUser(g.stdin, g.stderr, fmt.Sprintf("%s exists. Overwrite? [y/N]: ", path))
}

// warnSensitive lists selected paths that look like they hold secrets. It never blocks.
func (g *generator) warnSensitive(paths []string) {
	hits := classify.SensitivePaths(paths)
	if len(hits) == 0 {
		return
	}
	warnColor.Fprintf(g.stderr, "Warning: %d selected files may contain secrets:\n", len(hits))
	for i, p := range hits {
		if i == maxSensitiveShown {
			warnColor.Fprintf(g.stderr, "  ... and %d more\n", len(hits)-maxSensitiveShown)
			break
		}
		warnColor.Fprintf(g.stderr, "  %s\n", p)
	}
	if !g.redact {
		warnColor.Fprintln(g.stderr, "Consider --redact.")
	}
}
