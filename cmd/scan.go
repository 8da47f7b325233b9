package cmd

import (
	"fmt"
	"strings"

	"repo2md/pkg/document"
	"repo2md/pkg/scan"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	scanOpts scanFlags
	noTree   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List the files repo2md would see in a project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadProject(cmd.Context(), projectDir(args), scanOpts)
		if err != nil {
			return err
		}

		heading := color.New(color.Bold)
		out := cmd.OutOrStdout()
		heading.Fprintf(out, "%s\n", res.Root)
		fmt.Fprintf(out, "Files:      %d\n", len(res.Entries))
		fmt.Fprintf(out, "Total size: %s\n", scan.FormatBytes(res.TotalSize))
		fmt.Fprintf(out, "Extensions: %s\n", strings.Join(res.Extensions, ", "))
		if !noTree {
			fmt.Fprintln(out)
			fmt.Fprint(out, document.RenderTree(res.RootName(), res.Paths()))
		}
		return nil
	},
}

func init() {
	scanOpts.register(scanCmd)
	scanCmd.Flags().BoolVar(&noTree, "no-tree", false, "print the summary only")

	RootCmd.AddCommand(scanCmd)
}
