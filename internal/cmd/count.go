package cmd

import (
	"github.com/commonmodules/commonmodules/util"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the cm CLI.
// It provides file counting functionality for directory trees.
func NewCountCmd(st *state) *cobra.Command {
	var (
		path string
		ext  string
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count files in a directory tree",
		Long: `Count the total number of files in a directory tree.

This is a utility command that recursively walks through a directory
and counts all files (excluding directories). Useful for getting
quick statistics about directory contents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			count, err := util.CountFiles(path, ext)
			if err != nil {
				return st.fail(err)
			}
			printf(cmd, "Total files: %d\n", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to count files in")
	cmd.Flags().StringVarP(&ext, "ext", "e", "", "Only count files with this extension")

	return cmd
}
