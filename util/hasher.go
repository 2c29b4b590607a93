package util

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/colorhash"
)

// HashPathFromHash names a cached download after its key, in the form
// "bucket-subbucket-hash" (e.g. "742-00000-abc123..."). The bucket is a color
// hash of the key mod 1000. The subbucket is always zero for now and exists
// so a full bucket can be split without renaming existing entries.
func HashPathFromHash(hash string) string {
	return fmt.Sprintf("%d-%05d-%s", colorhash.HashString(hash)%1000, 0, hash)
}

// HashFromHashPath recovers the key from a path built by HashPathFromHash.
// Any directory and extension are ignored. CacheEntries uses it to tell cache
// entries from stray files.
func HashFromHashPath(path string) (string, error) {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(name, "-")
	if len(parts) != 3 || parts[2] == "" {
		return "", ErrInvalidHashPath
	}
	return parts[2], nil
}

// BucketDirFromHashPath returns the directory a hash path is stored under,
// built from its bucket and subbucket components.
func BucketDirFromHashPath(path string) (string, error) {
	parts := strings.Split(filepath.Base(path), "-")
	if len(parts) < 3 {
		return "", ErrInvalidHashPath
	}
	return filepath.Join(parts[0], parts[1]), nil
}

// GetFileHash hashes a file and returns the hash as a hex string suitable for use in a filepath
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
