// Package util provides file-system and serialization helpers used across
// commonmodules.
//
// Key Components:
//
// File Enumeration:
//   - ListFiles, ListAllFiles and ListDirs return sorted absolute paths
//   - Extension filters are normalised to start with "."
//   - DirsOnly selects sub-directories instead of files
//
// Archives:
//   - Compress packs files and directory trees into a ZIP archive,
//     preserving relative paths and empty directories
//   - Decompress extracts one or more archives into a target directory
//
// Downloads:
//   - Downloader fetches URLs through a temporary file, verifying the byte
//     count and optionally a SHA-256 checksum before the final rename
//   - Fetch keeps a content-addressed cache bucketed by HashPathFromHash;
//     CacheEntries, Evict and ClearCache inspect and prune it
//
// Serialization:
//   - JSON, MessagePack and YAML object files
//   - Whitespace separated numeric text files for dense matrices
//   - Matrix Market files for sparse matrices
//
// None of the helpers keep state between calls, except the download cache on
// disk. Errors are returned, never logged, apart from the Downloader which
// reports progress to its injected logger.
package util
