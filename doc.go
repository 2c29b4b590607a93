// Package main provides the cm command-line interface.
//
// cm is a grab bag of everyday helpers: listing and counting files, building
// and extracting zip archives, checked downloads, and sparse matrix row
// operations on Matrix Market files (row deletion, vertical stacking and
// equality).
//
// The main binary supports multiple subcommands:
//   - ls, count: list and count files in directory trees
//   - zip, unzip: pack and extract archives
//   - download: fetch files with size and checksum verification
//   - matrix: info, delete-row, stack and equal on sparse matrices
//   - seed: generate random sparse matrices
package main
