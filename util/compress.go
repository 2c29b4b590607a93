package util

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FormatZip is the only archive format Compress and Decompress understand.
const FormatZip = "zip"

// Compress packs paths into a single archive at dest. Every path keeps its
// position relative to its parent directory, so compressing "/data/raw"
// produces entries under "raw/". Directories, including empty ones, are
// stored as "name/" entries. Only FormatZip is supported.
func Compress(paths []string, dest, format string) (err error) {
	if format != FormatZip {
		return fmt.Errorf("%q: %w", format, ErrNotImplemented)
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	file, err := os.Create(destAbs)
	if err != nil {
		return err
	}
	w := zip.NewWriter(file)
	defer func() {
		err = errors.Join(err, w.Close(), file.Close())
	}()

	for _, p := range paths {
		root, absErr := filepath.Abs(p)
		if absErr != nil {
			return absErr
		}
		if _, statErr := os.Stat(root); statErr != nil {
			return errors.Join(fmt.Errorf("%s: %w", p, ErrNotFound), statErr)
		}
		base := filepath.Dir(root)
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == destAbs {
				return nil
			}
			rel, err := filepath.Rel(base, path)
			if err != nil {
				return fmt.Errorf("failed to get relative path: %w", err)
			}
			return addZipEntry(w, path, filepath.ToSlash(rel), d)
		})
		if walkErr != nil {
			return fmt.Errorf("error walking path %s: %w", p, walkErr)
		}
	}
	return nil
}

func addZipEntry(w *zip.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	if d.IsDir() {
		header.Name = name + "/"
		header.Method = zip.Store
		_, err = w.CreateHeader(header)
		return err
	}
	if !info.Mode().IsRegular() {
		// sockets, devices and symlinks have no content to archive
		return nil
	}
	header.Name = name
	header.Method = zip.Deflate
	writer, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(writer, f)
	return err
}

// Decompress extracts every archive into target, creating it when needed.
// Entries that would land outside target are rejected with ErrUnsafePath.
func Decompress(archives []string, target, format string) error {
	if format != FormatZip {
		return fmt.Errorf("%q: %w", format, ErrNotImplemented)
	}
	root, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	for _, archive := range archives {
		if err := extractZip(archive, root); err != nil {
			return fmt.Errorf("extracting %s: %w", archive, err)
		}
	}
	return nil
}

func extractZip(archive, root string) error {
	zrc, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer zrc.Close()
	for _, f := range zrc.File {
		dest := filepath.Join(root, filepath.FromSlash(f.Name))
		if dest != root && !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
			return fmt.Errorf("%s: %w", f.Name, ErrUnsafePath)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractZipFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractZipFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, rc)
	return errors.Join(err, out.Close())
}

// CountFilesInArchive returns the number of entries stored in a ZIP archive.
func CountFilesInArchive(path string) (int, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return 0, err
	}
	defer zrc.Close()
	return len(zrc.File), nil
}

// CheckFileInArchive reports whether a ZIP archive holds an entry named filename.
func CheckFileInArchive(path string, filename string) (bool, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return false, err
	}
	defer zrc.Close()
	for _, v := range zrc.File {
		if v.Name == filename {
			return true, nil
		}
	}
	return false, nil
}
