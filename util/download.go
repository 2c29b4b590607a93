package util

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UnknownSize disables the byte count check of Download.
const UnknownSize int64 = -1

// Downloader fetches remote files onto the local disk.
type Downloader struct {
	Client   *http.Client
	Logger   logrus.FieldLogger
	CacheDir string // root of the Fetch cache
}

type downloadConfig struct {
	sha256 string
}

// DownloadOption configures a single Download call.
type DownloadOption func(*downloadConfig)

// WithSHA256 makes Download verify the hex encoded SHA-256 of the body.
func WithSHA256(sum string) DownloadOption {
	return func(c *downloadConfig) { c.sha256 = strings.ToLower(sum) }
}

// NewDownloader returns a Downloader using client and logger. Nil values
// fall back to http.DefaultClient and a discarding logger.
func NewDownloader(client *http.Client, logger logrus.FieldLogger) *Downloader {
	return &Downloader{Client: client, Logger: logger}
}

// Download fetches rawURL into dest and returns the path written. When dest is
// an existing directory, or ends with a path separator, the file name is taken
// from the URL. The body is streamed into a temporary file next to dest and
// only renamed into place once the byte count matches expectedSize (skipped
// for UnknownSize) and any requested checksum matches. Nothing is retried.
func (d *Downloader) Download(ctx context.Context, rawURL, dest string, expectedSize int64, opts ...DownloadOption) (string, error) {
	var cfg downloadConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Join(ErrInvalidArgument, err)
	}
	dest, err = resolveDest(u, dest)
	if err != nil {
		return "", err
	}
	log := d.logger().WithFields(logrus.Fields{"url": rawURL, "dest": dest})

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Join(ErrInvalidArgument, err)
	}
	log.Debug("starting download")
	resp, err := d.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("GET %s: %s: %w", rawURL, resp.Status, ErrHTTPStatus)
	}

	tmp := filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+"."+uuid.NewString()+".part")
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	n, copyErr := io.Copy(io.MultiWriter(f, h), resp.Body)
	if err := errors.Join(copyErr, f.Close()); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if expectedSize != UnknownSize && n != expectedSize {
		os.Remove(tmp)
		return "", fmt.Errorf("%s: got %d bytes, want %d: %w", rawURL, n, expectedSize, ErrSizeMismatch)
	}
	if cfg.sha256 != "" {
		if got := fmt.Sprintf("%x", h.Sum(nil)); got != cfg.sha256 {
			os.Remove(tmp)
			return "", fmt.Errorf("%s: got %s, want %s: %w", rawURL, got, cfg.sha256, ErrChecksumMismatch)
		}
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", err
	}
	log.WithField("bytes", n).Info("download complete")
	return dest, nil
}

// Fetch returns a cached copy of rawURL, downloading it on first use. Cached
// files are named by the SHA-256 of the URL and spread over bucket
// directories derived from HashPathFromHash. A cached copy is held to the
// same expectedSize and checksum as a fresh download; a mismatch is returned
// as an error and the copy is left for Evict.
func (d *Downloader) Fetch(ctx context.Context, rawURL string, expectedSize int64, opts ...DownloadOption) (string, error) {
	if d.CacheDir == "" {
		return "", fmt.Errorf("Fetch needs a cache directory: %w", ErrInvalidArgument)
	}
	p, err := d.CachePath(rawURL)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return d.Download(ctx, rawURL, p, expectedSize, opts...)
	}
	d.logger().WithField("url", rawURL).Debug("cache hit")
	if expectedSize != UnknownSize && info.Size() != expectedSize {
		return "", fmt.Errorf("cached %s: has %d bytes, want %d: %w", rawURL, info.Size(), expectedSize, ErrSizeMismatch)
	}
	var cfg downloadConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sha256 != "" {
		got, err := GetFileHash(p)
		if err != nil {
			return "", err
		}
		if got != cfg.sha256 {
			return "", fmt.Errorf("cached %s: got %s, want %s: %w", rawURL, got, cfg.sha256, ErrChecksumMismatch)
		}
	}
	return p, nil
}

// CacheEntry is one file held by the Fetch cache.
type CacheEntry struct {
	Key  string // SHA-256 of the URL
	Path string
	Size int64
}

// CacheEntries lists the files in the Fetch cache, sorted by path. Partial
// downloads and files not named by HashPathFromHash are skipped. A missing
// cache directory yields no entries.
func (d *Downloader) CacheEntries() ([]CacheEntry, error) {
	if d.CacheDir == "" {
		return nil, fmt.Errorf("no cache directory: %w", ErrInvalidArgument)
	}
	var entries []CacheEntry
	err := filepath.WalkDir(d.CacheDir, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == d.CacheDir {
				return filepath.SkipAll
			}
			return err
		}
		if !de.Type().IsRegular() || strings.HasPrefix(de.Name(), ".") {
			return nil
		}
		key, err := HashFromHashPath(p)
		if err != nil {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			return err
		}
		entries = append(entries, CacheEntry{Key: key, Path: p, Size: info.Size()})
		return nil
	})
	return entries, err
}

// Evict removes the cached copy of rawURL. It returns ErrNotFound when
// nothing is cached for it.
func (d *Downloader) Evict(rawURL string) error {
	if d.CacheDir == "" {
		return fmt.Errorf("no cache directory: %w", ErrInvalidArgument)
	}
	p, err := d.CachePath(rawURL)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", rawURL, ErrNotFound)
		}
		return err
	}
	d.logger().WithFields(logrus.Fields{"url": rawURL, "path": p}).Info("evicted")
	return nil
}

// ClearCache removes every entry listed by CacheEntries and returns how many
// were removed.
func (d *Downloader) ClearCache() (int, error) {
	entries, err := d.CacheEntries()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if err := os.Remove(e.Path); err != nil {
			return n, err
		}
		n++
	}
	d.logger().WithField("entries", n).Info("cache cleared")
	return n, nil
}

// CachePath returns where Fetch stores rawURL.
func (d *Downloader) CachePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Join(ErrInvalidArgument, err)
	}
	key, err := GetHash(strings.NewReader(rawURL))
	if err != nil {
		return "", err
	}
	name := HashPathFromHash(key) + path.Ext(u.Path)
	bucket, err := BucketDirFromHashPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.CacheDir, bucket, name), nil
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

func (d *Downloader) logger() logrus.FieldLogger {
	if d.Logger != nil {
		return d.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func resolveDest(u *url.URL, dest string) (string, error) {
	if dest == "" {
		return "", fmt.Errorf("empty destination: %w", ErrInvalidArgument)
	}
	isDir := strings.HasSuffix(dest, string(os.PathSeparator)) || strings.HasSuffix(dest, "/")
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		isDir = true
	}
	if !isDir {
		return dest, nil
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive a file name from %s: %w", u, ErrInvalidArgument)
	}
	return filepath.Join(dest, name), nil
}
