// Package util provides utility functions for commonmodules.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Argument errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("path not found")

	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Hash path errors
	ErrInvalidHashPath = errors.New("invalid hash path format")

	// Archive errors
	ErrNotImplemented = errors.New("archive format not implemented")
	ErrUnsafePath     = errors.New("archive entry escapes target directory")

	// Download errors
	ErrHTTPStatus       = errors.New("unexpected HTTP status")
	ErrSizeMismatch     = errors.New("downloaded size does not match expected size")
	ErrChecksumMismatch = errors.New("downloaded checksum does not match expected checksum")

	// Data file errors
	ErrMalformedData = errors.New("malformed data file")
)
