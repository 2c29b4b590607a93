package cmd

import (
	"github.com/commonmodules/commonmodules/util"
	"github.com/spf13/cobra"
)

// NewZipCmd creates and returns the zip subcommand.
func NewZipCmd(st *state) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "zip ARCHIVE PATH...",
		Short: "Pack files and directories into an archive",
		Long: `Pack every PATH into ARCHIVE.

Each PATH keeps its structure relative to its parent directory, so
"cm zip out.zip data/raw" stores entries under "raw/". Empty directories
are kept.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.Compress(args[1:], args[0], format); err != nil {
				return st.fail(err)
			}
			n, err := util.CountFilesInArchive(args[0])
			if err != nil {
				return st.fail(err)
			}
			st.logger.Info("wrote ", n, " entries to ", args[0])
			printf(cmd, "%s: %d entries\n", args[0], n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", util.FormatZip, "Archive format")

	return cmd
}

// NewUnzipCmd creates and returns the unzip subcommand.
func NewUnzipCmd(st *state) *cobra.Command {
	var (
		format string
		target string
	)

	cmd := &cobra.Command{
		Use:   "unzip ARCHIVE...",
		Short: "Extract archives into a directory",
		Long: `Extract every ARCHIVE into the target directory, creating it when
needed. Entries that would be written outside the target are rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.Decompress(args, target, format); err != nil {
				return st.fail(err)
			}
			st.logger.Info("extracted ", len(args), " archives into ", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", util.FormatZip, "Archive format")
	cmd.Flags().StringVarP(&target, "output", "o", ".", "Directory to extract into")

	return cmd
}
