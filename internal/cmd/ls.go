package cmd

import (
	"github.com/commonmodules/commonmodules/util"
	"github.com/spf13/cobra"
)

// NewListCmd creates and returns the ls subcommand.
func NewListCmd(st *state) *cobra.Command {
	var (
		ext       string
		recursive bool
		dirs      bool
	)

	cmd := &cobra.Command{
		Use:   "ls [DIR...]",
		Short: "List files in one or more directories",
		Long: `List the files in each DIR, sorted by absolute path.

With --ext only files with that extension are listed. With --dirs the
sub-directories are listed instead of files. Without DIR the current
directory is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if dirs {
				ext = util.DirsOnly
			}
			paths, err := util.ListFiles(args, ext, recursive)
			if err != nil {
				return st.fail(err)
			}
			for _, p := range paths {
				printf(cmd, "%s\n", p)
			}
			st.logger.Info("listed ", len(paths), " entries")
			return nil
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", "", "Only list files with this extension")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into sub-directories")
	cmd.Flags().BoolVarP(&dirs, "dirs", "d", false, "List directories instead of files")

	return cmd
}
