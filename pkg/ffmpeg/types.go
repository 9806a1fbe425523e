package ffmpeg

// MediaMetadata represents metadata extracted from a media file
type MediaMetadata struct {
	Duration    float64 `json:"duration"`     // Duration in seconds
	SampleRate  int     `json:"sample_rate"`  // Sample rate of the first audio stream in Hz
	Channels    int     `json:"channels"`     // Number of audio channels
	Bitrate     int     `json:"bitrate"`      // Bitrate in bits per second
	Format      string  `json:"format"`       // Container format (mp4, mkv, etc.)
	AudioCodec  string  `json:"audio_codec"`  // Audio codec of the first audio stream
	Size        int64   `json:"size"`         // File size in bytes
	Title       string  `json:"title"`        // Title metadata
	HasAudio    bool    `json:"has_audio"`    // Whether the container carries an audio stream
	AudioStream int     `json:"audio_stream"` // Index of the first audio stream
}

// PCMAudio holds a decoded mono audio stream used for silence analysis.
type PCMAudio struct {
	Samples    []float32 // 32-bit float samples, mono
	SampleRate int       // Samples per second
}

// DurationMs returns the total duration of the decoded audio in milliseconds.
func (p *PCMAudio) DurationMs() int64 {
	if p.SampleRate == 0 {
		return 0
	}
	return int64(len(p.Samples)) * 1000 / int64(p.SampleRate)
}
