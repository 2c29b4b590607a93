package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirsOnly is the extension filter that selects sub-directories instead of
// regular files.
const DirsOnly = "<dirs>"

// ListFiles returns the sorted absolute paths of the entries in dirs that
// match ext. An empty ext matches every regular file, DirsOnly matches
// directories, anything else is compared against the file extension with a
// leading "." added when missing. With recursive set every sub-directory is
// searched as well. No dirs means no results. Each dir must exist.
func ListFiles(dirs []string, ext string, recursive bool) ([]string, error) {
	ext = normalizeExt(ext)
	out := []string{}
	for _, dir := range dirs {
		root, err := checkDir(dir)
		if err != nil {
			return nil, err
		}
		if recursive {
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if path == root {
					return nil
				}
				if matches(path, d, ext) {
					out = append(out, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("error walking path %s: %w", root, err)
			}
			continue
		}
		dirents, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, d := range dirents {
			path := filepath.Join(root, d.Name())
			if matches(path, d, ext) {
				out = append(out, path)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// ListAllFiles returns the sorted absolute paths of all files under dir and
// its sub-directories that match ext.
func ListAllFiles(dir, ext string) ([]string, error) {
	return ListFiles([]string{dir}, ext, true)
}

// ListDirs returns the sorted absolute paths of the direct sub-directories of dir.
func ListDirs(dir string) ([]string, error) {
	return ListFiles([]string{dir}, DirsOnly, false)
}

// CountFiles counts the regular files under dir that match ext, recursively.
func CountFiles(dir, ext string) (int, error) {
	root, err := checkDir(dir)
	if err != nil {
		return 0, err
	}
	ext = normalizeExt(ext)
	if ext == DirsOnly {
		return 0, fmt.Errorf("CountFiles counts files only: %w", ErrInvalidArgument)
	}
	count := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && matches(path, d, ext) {
			count++
		}
		return nil
	})
	return count, err
}

// FileExists reports whether a file or directory exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoveDirectory removes dir and everything inside it.
func RemoveDirectory(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", dir, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrExpectedDirectory
	}
	return os.RemoveAll(dir)
}

func normalizeExt(ext string) string {
	if ext == "" || ext == DirsOnly || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// checkDir resolves dir to an absolute path and makes sure it is a directory.
func checkDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("directory is empty: %w", ErrInvalidArgument)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Join(ErrInvalidArgument, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Join(fmt.Errorf("%s is not a directory: %w", dir, ErrInvalidArgument), err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory: %w", dir, ErrInvalidArgument)
	}
	return abs, nil
}

// matches applies the extension filter. Symlinks are judged by their target.
func matches(path string, d fs.DirEntry, ext string) bool {
	mode := d.Type()
	if mode&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		mode = info.Mode().Type()
	}
	if ext == DirsOnly {
		return mode.IsDir()
	}
	if !mode.IsRegular() {
		return false
	}
	return ext == "" || filepath.Ext(path) == ext
}
