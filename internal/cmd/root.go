package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/commonmodules/commonmodules/internal/config"
	"github.com/commonmodules/commonmodules/logging"
	"github.com/commonmodules/commonmodules/version"
	"github.com/spf13/cobra"
)

const (
	groupFiles    = "files"
	groupMatrices = "matrices"
)

// state is shared by every subcommand of one root command. It is filled in
// by the root's PersistentPreRunE before any subcommand runs.
type state struct {
	cfg    config.Config
	logger *logging.Logger
}

// NewRootCmd creates and returns the root cobra command for the cm CLI.
// It sets up all subcommands, command groups and the persistent flags that
// override the CM_* environment variables.
func NewRootCmd() *cobra.Command {
	st := &state{cfg: config.Default()}
	var flags config.Config

	rootCmd := &cobra.Command{
		Use:   "cm",
		Short: "cm - file, archive and sparse matrix utilities",
		Long: `cm bundles small everyday helpers behind one binary.

Files: list and count files, build and extract zip archives, and download
files with size and checksum checks into an optional cache.

Matrices: inspect Matrix Market files, delete rows from them, stack them
vertically and compare them.

Every run appends to a log file (LogFile.log by default) and mirrors errors
to stderr. The CM_LOG_LEVEL, CM_LOG_FILE, CM_LOG_STREAM, CM_DOWNLOAD_TIMEOUT
and CM_CACHE_DIR environment variables set defaults that flags override.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd, args, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return st.close()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log file level: debug, info, warn or error")
	pf.StringVar(&flags.LogFile, "log-file", "", "Log file to append to; empty disables the file")
	pf.StringVar(&flags.LogStream, "log-stream", "", "Where errors are mirrored: stderr, stdout or none")
	pf.DurationVar(&flags.DownloadTimeout, "timeout", 0, "Download timeout")
	pf.StringVar(&flags.CacheDir, "cache-dir", "", "Download cache directory")

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFiles,
		Title: "File Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupMatrices,
		Title: "Matrix Operations",
	})

	lsCmd := NewListCmd(st)
	countCmd := NewCountCmd(st)
	zipCmd := NewZipCmd(st)
	unzipCmd := NewUnzipCmd(st)
	downloadCmd := NewDownloadCmd(st)
	cacheCmd := NewCacheCmd(st)
	matrixCmd := NewMatrixCmd(st)
	seedCmd := NewSeedCmd(st)

	lsCmd.GroupID = groupFiles
	countCmd.GroupID = groupFiles
	zipCmd.GroupID = groupFiles
	unzipCmd.GroupID = groupFiles
	downloadCmd.GroupID = groupFiles
	cacheCmd.GroupID = groupFiles
	matrixCmd.GroupID = groupMatrices
	seedCmd.GroupID = groupMatrices

	rootCmd.AddCommand(lsCmd, countCmd, zipCmd, unzipCmd, downloadCmd, cacheCmd, matrixCmd, seedCmd)
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// setup resolves the configuration (defaults, environment, changed flags)
// and opens the logger.
func (st *state) setup(cmd *cobra.Command, args []string, flags config.Config) error {
	cfg := config.Default()
	if err := config.FromEnvironment(&cfg); err != nil {
		return err
	}
	pf := cmd.Flags()
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if pf.Changed("log-file") {
		cfg.LogFile = flags.LogFile
	}
	if pf.Changed("log-stream") {
		cfg.LogStream = flags.LogStream
	}
	if pf.Changed("timeout") {
		cfg.DownloadTimeout = flags.DownloadTimeout
	}
	if pf.Changed("cache-dir") {
		cfg.CacheDir = flags.CacheDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var mirror io.Writer
	switch strings.ToLower(cfg.LogStream) {
	case config.StreamStderr:
		mirror = cmd.ErrOrStderr()
	case config.StreamStdout:
		mirror = cmd.OutOrStdout()
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Mirror: mirror,
	})
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.logger = logger
	st.logger.Debug("running ", cmd.CommandPath(), " ", strings.Join(args, " "))
	return nil
}

func (st *state) close() error {
	if st.logger == nil {
		return nil
	}
	err := st.logger.Close()
	st.logger = nil
	return err
}

// fail logs err and hands it back to cobra. Cobra skips the post-run hooks
// after an error, so the log file is closed here.
func (st *state) fail(err error) error {
	if st.logger != nil {
		st.logger.Error(err)
		st.close()
	}
	return err
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
