package acquisition

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidURL indicates the URL is not a recognized YouTube video link.
	ErrInvalidURL = errors.New("invalid YouTube URL")

	// ErrAcquisitionFailed indicates every download strategy failed.
	ErrAcquisitionFailed = errors.New("all download strategies failed")
)

var (
	youtubeURLRegex = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[a-zA-Z0-9_-]{11}.*$`)
	videoIDRegex    = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)
)

// ValidateYouTubeURL reports whether url points at a YouTube video. Both
// the long watch form and the youtu.be short form are accepted, with or
// without a scheme.
func ValidateYouTubeURL(url string) error {
	if !youtubeURLRegex.MatchString(url) {
		return ErrInvalidURL
	}
	return nil
}

// VideoID extracts the 11-character video identifier from a YouTube URL.
func VideoID(url string) string {
	m := videoIDRegex.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
