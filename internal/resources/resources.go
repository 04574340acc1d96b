// Package resources fetches and caches the remote files a pretrained
// tokenizer depends on.
//
// Every resource is fetched at most once: a cached copy short-circuits the
// network entirely, and a failed download falls back to the cache when a
// copy exists. Downloads are single-attempt with no retry logic; a resource
// is unavailable only when both the network and the cache come up empty.
package resources

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Common errors.
var (
	ErrUnavailable      = errors.New("resource unavailable: no download and no cached copy")
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
)

// downloadTimeout bounds a single resource download.
const downloadTimeout = 2 * time.Minute

// Fetcher resolves resource URLs to local files backed by a cache
// directory.
type Fetcher struct {
	Client   *http.Client
	CacheDir string
}

// NewFetcher creates a Fetcher over cacheDir. An empty cacheDir selects a
// "subtext" directory under the user cache dir, falling back to a hidden
// directory in the working directory when none is known.
func NewFetcher(cacheDir string) *Fetcher {
	if cacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(dir, "subtext")
		} else {
			cacheDir = ".subtext-cache"
		}
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: downloadTimeout},
		CacheDir: cacheDir,
	}
}

// Resolve returns a local path for rawURL, downloading into the cache
// directory when no copy exists yet.
//
// A failed download falls back to whatever cached copy exists; Resolve
// reports ErrUnavailable only when there is neither.
func (f *Fetcher) Resolve(rawURL string) (string, error) {
	name, err := cacheName(rawURL)
	if err != nil {
		return "", err
	}

	path := filepath.Join(f.CacheDir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := f.download(rawURL, path); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, rawURL, err)
	}
	return path, nil
}

// download fetches rawURL into dst through a temp file, so a partial
// download never becomes a cached copy.
func (f *Fetcher) download(rawURL, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	resp, err := f.Client.Get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close download: %w", err)
	}
	return os.Rename(tmp.Name(), dst)
}

// cacheName derives the cache file name from the final path segment of
// rawURL.
func cacheName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse resource url: %w", err)
	}
	name := filepath.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("resource url %q has no file name", rawURL)
	}
	return name, nil
}
