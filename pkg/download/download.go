package download

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Options configures the download behavior
type Options struct {
	MaxSize   int64         // Maximum file size in bytes (0 = no limit)
	Timeout   time.Duration // Download timeout
	UserAgent string        // User agent string
	Progress  ProgressFunc  // Optional progress callback
}

// ProgressFunc is called during download to report progress
type ProgressFunc func(downloaded, total int64)

// DefaultOptions returns default download options
func DefaultOptions() Options {
	return Options{
		MaxSize:   2 * 1024 * 1024 * 1024, // 2GB default max
		Timeout:   10 * time.Minute,
		UserAgent: "SubtitleAPI/1.0",
	}
}

// Result contains information about a successful download
type Result struct {
	FilePath      string // Path to downloaded file
	ContentType   string // Content-Type from response
	ContentLength int64  // Size in bytes
}

// Downloader fetches remote media files to local storage
type Downloader struct {
	client  *http.Client
	options Options
}

// NewDownloader creates a new downloader with the given options
func NewDownloader(options Options) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true, // Don't compress media payloads
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
	}
}

// DownloadToFile downloads a URL to the given destination path. The
// destination file is removed on any failure so a partial artifact is
// never left behind.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.options.UserAgent)
	req.Header.Set("Accept", "video/*,audio/*,*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	contentLength := resp.ContentLength
	if d.options.MaxSize > 0 && contentLength > d.options.MaxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", contentLength, d.options.MaxSize)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	written, err := d.copyWithProgress(dest, resp.Body, contentLength)
	closeErr := dest.Close()

	if err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	if closeErr != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to finalize download: %w", closeErr)
	}

	log.Printf("[DEBUG] Downloaded %d bytes to %s", written, destPath)

	return &Result{
		FilePath:      destPath,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: written,
	}, nil
}

// copyWithProgress copies the response body, enforcing the size limit and
// reporting progress when a callback is configured.
func (d *Downloader) copyWithProgress(dst io.Writer, src io.Reader, total int64) (int64, error) {
	buf := make([]byte, 256*1024)
	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if d.options.MaxSize > 0 && written+int64(n) > d.options.MaxSize {
				return written, fmt.Errorf("download exceeded maximum size of %d bytes", d.options.MaxSize)
			}
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, writeErr
			}
			if d.options.Progress != nil {
				d.options.Progress(written, total)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

// CleanupTempFile removes a temporary file, ignoring missing files.
func CleanupTempFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsMediaContentType reports whether a Content-Type header plausibly
// carries audio or video.
func IsMediaContentType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(contentType, "video/") ||
		strings.HasPrefix(contentType, "audio/") ||
		strings.HasPrefix(contentType, "application/octet-stream")
}
