package acquisition

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sublab/subtitle-api/pkg/config"
	"github.com/sublab/subtitle-api/pkg/download"
)

// Service downloads YouTube videos by trying a fixed sequence of
// strategies until one produces a usable file.
type Service struct {
	strategies []Strategy
	timeout    time.Duration
	ytDlpPath  string
}

// NewService builds the strategy chain from configuration.
func NewService(cfg *config.Config) *Service {
	opts := download.DefaultOptions()
	if cfg.Acquisition.MaxSize > 0 {
		opts.MaxSize = cfg.Acquisition.MaxSize
	}
	if cfg.Acquisition.FetchTimeout > 0 {
		opts.Timeout = cfg.Acquisition.FetchTimeout
	}
	downloader := download.NewDownloader(opts)

	return &Service{
		timeout:   cfg.Acquisition.FetchTimeout,
		ytDlpPath: cfg.Acquisition.YtDlpPath,
		strategies: []Strategy{
			&directURLStrategy{ytDlpPath: cfg.Acquisition.YtDlpPath, downloader: downloader},
			&ytDlpStrategy{name: "yt-dlp", path: cfg.Acquisition.YtDlpPath, format: "best[ext=mp4]/best"},
			&youtubeDLStrategy{path: cfg.Acquisition.YoutubeDlPath},
			&ytDlpStrategy{name: "yt-dlp-merge", path: cfg.Acquisition.YtDlpPath, format: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best"},
		},
	}
}

// Acquire downloads the video at url to destPath. Each strategy runs in
// isolation: partial artifacts from a failed attempt are removed before
// the next strategy starts. If every strategy errors but one of them left
// a fresh complete file in the destination directory, that file is
// recovered instead of failing the job.
func (s *Service) Acquire(ctx context.Context, url, destPath string) error {
	if err := ValidateYouTubeURL(url); err != nil {
		return err
	}

	started := time.Now()
	var lastErr error

	for _, strategy := range s.strategies {
		if err := ctx.Err(); err != nil {
			return err
		}
		removeArtifact(destPath)

		attemptCtx := ctx
		var cancel context.CancelFunc
		if s.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, s.timeout)
		}
		err := strategy.Fetch(attemptCtx, url, destPath)
		if cancel != nil {
			cancel()
		}

		if err == nil {
			if verifyErr := verifyFile(destPath); verifyErr == nil {
				log.Printf("[DEBUG] acquired %s via %s", VideoID(url), strategy.Name())
				return nil
			} else {
				err = verifyErr
			}
		}

		log.Printf("[WARN] download strategy %s failed: %v", strategy.Name(), err)
		removeArtifact(destPath)
		lastErr = err
	}

	if recovered := recoverFreshDownload(filepath.Dir(destPath), started, destPath); recovered {
		log.Printf("[DEBUG] recovered fresh download for %s from temp directory", VideoID(url))
		return nil
	}

	return fmt.Errorf("%w: %v", ErrAcquisitionFailed, lastErr)
}

// defaultTitle is used when the video title cannot be resolved.
const defaultTitle = "youtube_video"

// Title resolves the video's title for naming the subtitle file. Failures
// fall back to a generic name rather than failing the job.
func (s *Service) Title(ctx context.Context, url string) string {
	if s.ytDlpPath == "" {
		return defaultTitle
	}
	cmd := exec.CommandContext(ctx, s.ytDlpPath, "--print", "%(title)s", "--skip-download", "--no-playlist", url)
	out, err := cmd.Output()
	if err != nil {
		log.Printf("[WARN] failed to resolve video title: %v", err)
		return defaultTitle
	}
	title := strings.TrimSpace(string(out))
	if title == "" {
		return defaultTitle
	}
	return title
}

// verifyFile checks that the download produced a non-empty file.
func verifyFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("downloaded file missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("downloaded file is empty")
	}
	return nil
}

func removeArtifact(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to remove partial download %s: %v", path, err)
	}
}

// recoverFreshDownload looks for a non-empty .mp4 written to dir after
// the acquisition started. A strategy occasionally reports failure after
// the file has already been fully written, typically when yt-dlp exits
// non-zero during post-download cleanup.
func recoverFreshDownload(dir string, since time.Time, destPath string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	// Filesystems with coarse mtime granularity can stamp a file a hair
	// before the recorded start.
	cutoff := since.Add(-2 * time.Second)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp4") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() == 0 || info.ModTime().Before(cutoff) {
			continue
		}
		candidate := filepath.Join(dir, entry.Name())
		if candidate == destPath {
			return true
		}
		if err := os.Rename(candidate, destPath); err != nil {
			log.Printf("[WARN] failed to recover download %s: %v", candidate, err)
			continue
		}
		return true
	}
	return false
}
