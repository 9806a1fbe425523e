package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadToFile(t *testing.T) {
	payload := []byte("fake mp4 payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SubtitleAPI/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "video/mp4")
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "video.mp4")
	d := NewDownloader(DefaultOptions())

	result, err := d.DownloadToFile(context.Background(), server.URL, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, result.FilePath)
	assert.Equal(t, "video/mp4", result.ContentType)
	assert.Equal(t, int64(len(payload)), result.ContentLength)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownloadToFileServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "video.mp4")
	d := NewDownloader(DefaultOptions())

	_, err := d.DownloadToFile(context.Background(), server.URL, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.NoFileExists(t, dest)
}

func TestDownloadToFileSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "video.mp4")
	opts := DefaultOptions()
	opts.MaxSize = 1024
	d := NewDownloader(opts)

	_, err := d.DownloadToFile(context.Background(), server.URL, dest)
	require.Error(t, err)
	// Partial artifact must not survive.
	assert.NoFileExists(t, dest)
}

func TestDownloadToFileProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 1000))
	}))
	defer server.Close()

	var reported int64
	opts := DefaultOptions()
	opts.Progress = func(downloaded, total int64) {
		reported = downloaded
	}

	dest := filepath.Join(t.TempDir(), "video.mp4")
	_, err := NewDownloader(opts).DownloadToFile(context.Background(), server.URL, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), reported)
}

func TestCleanupTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp.mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.NoError(t, CleanupTempFile(path))
	assert.NoFileExists(t, path)

	// Missing files and empty paths are not errors.
	assert.NoError(t, CleanupTempFile(path))
	assert.NoError(t, CleanupTempFile(""))
}

func TestIsMediaContentType(t *testing.T) {
	assert.True(t, IsMediaContentType("video/mp4"))
	assert.True(t, IsMediaContentType("audio/mpeg"))
	assert.True(t, IsMediaContentType("application/octet-stream"))
	assert.False(t, IsMediaContentType("text/html"))
	assert.False(t, IsMediaContentType(""))
}
