package acquisition

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sublab/subtitle-api/pkg/download"
)

// Strategy is one way of fetching a YouTube video to a local file.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url, destPath string) error
}

// directURLStrategy resolves the stream URL with yt-dlp and downloads it
// over plain HTTP, avoiding yt-dlp's own downloader entirely.
type directURLStrategy struct {
	ytDlpPath  string
	downloader *download.Downloader
}

func (s *directURLStrategy) Name() string { return "direct-url" }

func (s *directURLStrategy) Fetch(ctx context.Context, url, destPath string) error {
	cmd := exec.CommandContext(ctx, s.ytDlpPath, "--get-url", "-f", "best[ext=mp4]/best", "--no-playlist", url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("resolve stream URL: %w: %s", err, firstLine(stderr.String()))
	}

	streamURL := strings.TrimSpace(strings.SplitN(stdout.String(), "\n", 2)[0])
	if streamURL == "" {
		return fmt.Errorf("resolve stream URL: empty response")
	}

	_, err := s.downloader.DownloadToFile(ctx, streamURL, destPath)
	return err
}

// ytDlpStrategy shells out to yt-dlp with a specific format selector.
type ytDlpStrategy struct {
	name   string
	path   string
	format string
}

func (s *ytDlpStrategy) Name() string { return s.name }

func (s *ytDlpStrategy) Fetch(ctx context.Context, url, destPath string) error {
	args := []string{
		"-f", s.format,
		"--no-playlist",
		"--no-part",
		"-o", destPath,
		url,
	}
	cmd := exec.CommandContext(ctx, s.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yt-dlp (%s): %w: %s", s.format, err, firstLine(stderr.String()))
	}
	return nil
}

// youtubeDLStrategy falls back to the older youtube-dl binary.
type youtubeDLStrategy struct {
	path string
}

func (s *youtubeDLStrategy) Name() string { return "youtube-dl" }

func (s *youtubeDLStrategy) Fetch(ctx context.Context, url, destPath string) error {
	args := []string{
		"-f", "best[ext=mp4]/best",
		"--no-playlist",
		"-o", destPath,
		url,
	}
	cmd := exec.CommandContext(ctx, s.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("youtube-dl: %w: %s", err, firstLine(stderr.String()))
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 300 {
		s = s[:300]
	}
	return s
}
