package cmd

import (
	"net/http"

	"github.com/commonmodules/commonmodules/util"
	"github.com/spf13/cobra"
)

// NewDownloadCmd creates and returns the download subcommand.
func NewDownloadCmd(st *state) *cobra.Command {
	var (
		size   int64
		sum    string
		cached bool
	)

	cmd := &cobra.Command{
		Use:   "download URL [DEST]",
		Short: "Download a file and check its size",
		Long: `Download URL to DEST. When DEST is a directory, or is omitted, the file
name is taken from the URL.

With --size the number of bytes received must match, and with --sha256 the
content digest must match, or nothing is written. With --cache the file is
stored in the download cache and reused by later runs; a cached copy is
checked against --size and --sha256 as well. See "cm cache" to inspect it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := util.NewDownloader(&http.Client{Timeout: st.cfg.DownloadTimeout}, st.logger.FieldLogger())
			d.CacheDir = st.cfg.CacheDir

			var opts []util.DownloadOption
			if sum != "" {
				opts = append(opts, util.WithSHA256(sum))
			}

			var (
				path string
				err  error
			)
			switch {
			case cached:
				path, err = d.Fetch(cmd.Context(), args[0], size, opts...)
			case len(args) == 2:
				path, err = d.Download(cmd.Context(), args[0], args[1], size, opts...)
			default:
				path, err = d.Download(cmd.Context(), args[0], "./", size, opts...)
			}
			if err != nil {
				return st.fail(err)
			}
			printf(cmd, "%s\n", path)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&size, "size", "s", util.UnknownSize, "Expected size in bytes, -1 to skip the check")
	cmd.Flags().StringVar(&sum, "sha256", "", "Expected SHA-256 of the content")
	cmd.Flags().BoolVar(&cached, "cache", false, "Store in and reuse the download cache")

	return cmd
}
