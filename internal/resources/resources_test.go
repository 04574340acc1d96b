package resources

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_ResolveDownloadsOnce(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())

	path, err := f.Resolve(srv.URL + "/dict.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))

	// Second resolve is served from the cache.
	again, err := f.Resolve(srv.URL + "/dict.txt")
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestFetcher_ResolvePrefersCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict.txt"), []byte("cached"), 0o644))

	// The server is gone; only the cached copy can satisfy the resolve.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := NewFetcher(dir)
	path, err := f.Resolve(srv.URL + "/dict.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data))
}

func TestFetcher_ResolveUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := NewFetcher(t.TempDir())
	_, err := f.Resolve(srv.URL + "/dict.txt")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFetcher_ResolveBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	_, err := f.Resolve(srv.URL + "/dict.txt")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_ResolveNoFileName(t *testing.T) {
	f := NewFetcher(t.TempDir())
	_, err := f.Resolve("https://example.com/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file name")
}

func TestFetcher_NoPartialFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(dir)
	_, err := f.Resolve(srv.URL + "/dict.txt")
	require.Error(t, err)

	// A failed download leaves nothing behind in the cache.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewFetcher_DefaultCacheDir(t *testing.T) {
	f := NewFetcher("")
	assert.NotEmpty(t, f.CacheDir)
	assert.NotNil(t, f.Client)
}

func TestChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	sum, err := Checksum(path)
	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	t.Run("match", func(t *testing.T) {
		err := Verify(path, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")
		assert.NoError(t, err)
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		err := Verify(path, "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824")
		assert.NoError(t, err)
	})

	t.Run("mismatch", func(t *testing.T) {
		err := Verify(path, "0000000000000000000000000000000000000000000000000000000000000000")
		require.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("missing file", func(t *testing.T) {
		err := Verify(filepath.Join(t.TempDir(), "nope"), "00")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrChecksumMismatch)
	})
}
