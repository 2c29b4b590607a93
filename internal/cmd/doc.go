// Package cmd provides the command-line interface implementation for cm.
//
// This package contains all the subcommand implementations for the cm CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: persistent logging and configuration flags, command groups
//   - ls, count: file listing and counting
//   - zip, unzip: archive handling
//   - download: size and checksum checked downloads with an optional cache
//   - matrix: info, delete-row, stack and equal on Matrix Market files
//   - seed: random sparse matrix generation
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. The root command resolves the configuration and
// opens the logger before any subcommand runs.
package cmd
