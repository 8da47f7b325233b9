package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"repo2md/pkg/picker"
	"repo2md/pkg/selection"

	"github.com/spf13/cobra"
)

type pickOptions struct {
	scan scanFlags
	sel  selectFlags
	out  outputFlags
}

var pickOpts pickOptions

var pickCmd = &cobra.Command{
	Use:   "pick [dir]",
	Short: "Choose files in an interactive checkbox tree, then generate",
	Long: `Opens a terminal checkbox tree of the project. Space toggles, / searches,
e cycles the extension filter and enter accepts. --include, --exclude, --ext and
--search preselect files before the tree opens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPick(cmd, projectDir(args), pickOpts)
	},
}

func init() {
	pickOpts.scan.register(pickCmd)
	pickOpts.sel.register(pickCmd)
	pickOpts.out.register(pickCmd)

	RootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, dir string, opts pickOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	gen, err := newGenerator(cmd, opts.out)
	if err != nil {
		return err
	}
	res, err := loadProject(ctx, dir, opts.scan)
	if err != nil {
		return err
	}

	tree := selection.Build(res.Entries)
	if opts.sel.preselects() {
		if err := opts.sel.apply(tree); err != nil {
			return err
		}
	}

	paths, err := picker.Run(tree, res.RootName(), res.Extensions)
	if errors.Is(err, picker.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted, nothing generated")
		return nil
	}
	if err != nil {
		return err
	}
	return gen.run(ctx, res, paths)
}
