package cmd

import (
	"github.com/commonmodules/commonmodules/util"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates and returns the cache command, which inspects and
// prunes the files kept by "download --cache".
func NewCacheCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "List and remove cached downloads",
	}
	cmd.AddCommand(
		newCacheListCmd(st),
		newCacheRemoveCmd(st),
		newCacheClearCmd(st),
	)
	return cmd
}

func cacheDownloader(st *state) *util.Downloader {
	d := util.NewDownloader(nil, st.logger.FieldLogger())
	d.CacheDir = st.cfg.CacheDir
	return d
}

func newCacheListCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List cached downloads with their size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := cacheDownloader(st).CacheEntries()
			if err != nil {
				return st.fail(err)
			}
			for _, e := range entries {
				printf(cmd, "%s\t%d\t%s\n", e.Key, e.Size, e.Path)
			}
			return nil
		},
	}
}

func newCacheRemoveCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "rm URL...",
		Short: "Remove the cached copies of URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := cacheDownloader(st)
			for _, u := range args {
				if err := d.Evict(u); err != nil {
					return st.fail(err)
				}
			}
			return nil
		},
	}
}

func newCacheClearCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached download",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := cacheDownloader(st).ClearCache()
			if err != nil {
				return st.fail(err)
			}
			printf(cmd, "Removed %d entries\n", n)
			return nil
		},
	}
}
