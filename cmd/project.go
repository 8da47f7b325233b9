package cmd

import (
	"context"
	"fmt"
	"strings"

	"repo2md/pkg/classify"
	"repo2md/pkg/ignore"
	"repo2md/pkg/scan"
	"repo2md/pkg/selection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanFlags are shared by every command that scans a project.
type scanFlags struct {
	noGitignore bool
	maxSizeKB   int64
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noGitignore, "no-gitignore", false, "do not apply the project's .gitignore")
	cmd.Flags().Int64Var(&f.maxSizeKB, "max-size", -1, "skip files larger than this many KB (0 = no limit, default from config)")
}

// selectFlags drive non-interactive selection.
type selectFlags struct {
	include []string
	exclude []string
	exts    []string
	search  string
	fuzzy   bool
}

func (f *selectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.include, "include", "i", nil, "glob of files to select (repeatable, default all)")
	cmd.Flags().StringArrayVarP(&f.exclude, "exclude", "x", nil, "glob of files to deselect (repeatable)")
	cmd.Flags().StringSliceVar(&f.exts, "ext", nil, "only keep these extensions, e.g. go,md ([no-ext] for none)")
	cmd.Flags().StringVar(&f.search, "search", "", "only keep files whose path matches this text")
	cmd.Flags().BoolVar(&f.fuzzy, "fuzzy", false, "use fuzzy matching for --search")
}

// filter turns the extension and search flags into a view filter.
func (f *selectFlags) filter() selection.Filter {
	var exts map[string]bool
	if len(f.exts) > 0 {
		exts = make(map[string]bool, len(f.exts))
		for _, e := range f.exts {
			exts[normalizeExt(e)] = true
		}
	}
	return selection.Filter{Extensions: exts, Query: f.search, Fuzzy: f.fuzzy}
}

// apply selects files on tree from the flags: include globs (or everything),
// minus exclude globs, restricted by extension and search.
func (f *selectFlags) apply(tree *selection.Tree) error {
	if len(f.include) == 0 {
		tree.SelectAll()
	} else if err := tree.SelectGlobs(f.include); err != nil {
		return fmt.Errorf("invalid --include: %w", err)
	}
	if err := tree.DeselectGlobs(f.exclude); err != nil {
		return fmt.Errorf("invalid --exclude: %w", err)
	}
	tree.Restrict(f.filter())
	return nil
}

// loadProject loads ignore rules and scans dir off the calling goroutine.
func loadProject(ctx context.Context, dir string, flags scanFlags) (*scan.Result, error) {
	useGitignore := cfg.UseGitignore && !flags.noGitignore
	gi, err := ignore.LoadIgnoreFiles(dir, useGitignore, cfg.Exclude, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}

	maxSize := cfg.MaxFileSize()
	if flags.maxSizeKB >= 0 {
		maxSize = flags.maxSizeKB * 1024
	}

	res, err := scan.Start(ctx, dir, scan.Options{
		Ignore:      gi,
		MaxFileSize: maxSize,
		Logger:      logger,
	}).Wait()
	if err != nil {
		return nil, err
	}
	logger.Debug("Project loaded",
		zap.String("root", res.Root),
		zap.Int("files", len(res.Entries)),
		zap.Bool("gitignore", useGitignore))
	return res, nil
}

func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// normalizeExt accepts ".GO", "go" or the no-extension token.
func normalizeExt(e string) string {
	e = strings.ToLower(strings.TrimSpace(e))
	if e == classify.NoExtension {
		return e
	}
	return strings.TrimPrefix(e, ".")
}

// preselects reports whether any selection flag was given.
func (f *selectFlags) preselects() bool {
	return len(f.include) > 0 || len(f.exclude) > 0 || len(f.exts) > 0 || f.search != ""
}
