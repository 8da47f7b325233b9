package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"repo2md/pkg/selection"
	"repo2md/pkg/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type generateOptions struct {
	scan   scanFlags
	sel    selectFlags
	out    outputFlags
	watchF bool
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Concatenate selected files of a project into one document",
	Long: `Select files with --include/--exclude globs, --ext and --search, then write a Markdown,
HTML or PDF document containing the directory tree and every selected file.
With --watch the document is rebuilt whenever the project changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, projectDir(args), genOpts)
	},
}

func init() {
	genOpts.scan.register(generateCmd)
	genOpts.sel.register(generateCmd)
	genOpts.out.register(generateCmd)
	generateCmd.Flags().BoolVar(&genOpts.watchF, "watch", false, "rebuild when files under the project change")

	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, dir string, opts generateOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(cmd, opts.out)
	if err != nil {
		return err
	}

	once := func(ctx context.Context) error {
		res, err := loadProject(ctx, dir, opts.scan)
		if err != nil {
			return err
		}
		tree := selection.Build(res.Entries)
		if err := opts.sel.apply(tree); err != nil {
			return err
		}
		_, paths := tree.SelectedLeaves()
		return gen.run(ctx, res, paths)
	}

	if err := once(ctx); err != nil {
		return err
	}
	if !opts.watchF {
		return nil
	}
	// Later rebuilds overwrite the previous export without asking.
	gen.flags.force = true
	return watchLoop(ctx, cmd, dir, gen, once)
}

// watchLoop reruns once after every debounced change until interrupted.
// Rebuild failures are reported and the loop keeps going.
func watchLoop(ctx context.Context, cmd *cobra.Command, dir string, gen *generator, once func(context.Context) error) error {
	w, err := watch.New(dir, watch.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(dir); err == nil {
		if out := gen.outputPath(filepath.Base(abs)); out != "" {
			w.Ignore(out)
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", dir)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-w.Events():
				logger.Info("Change detected, regenerating", zap.String("root", dir))
				if err := once(gctx); err != nil && gctx.Err() == nil {
					errColor.Fprintf(cmd.ErrOrStderr(), "Regeneration failed: %v\n", err)
					logger.Error("Regeneration failed", zap.Error(err))
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
