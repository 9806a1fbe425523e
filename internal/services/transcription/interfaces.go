package transcription

import (
	"context"

	"github.com/sublab/subtitle-api/pkg/ffmpeg"
	"github.com/sublab/subtitle-api/pkg/whisper"
)

// MediaProcessor extracts and decodes audio from media files.
type MediaProcessor interface {
	GetMetadata(ctx context.Context, filePath string) (*ffmpeg.MediaMetadata, error)
	ExtractAudio(ctx context.Context, mediaPath, outputPath string) error
	DecodePCM(ctx context.Context, audioPath string, sampleRate int) (*ffmpeg.PCMAudio, error)
}

// Recognizer turns an audio file into timed text segments.
type Recognizer interface {
	Available() bool
	Transcribe(ctx context.Context, audioPath, language string) (*whisper.Result, error)
}

// ProgressSink receives progress updates as the pipeline advances.
// Progress is a percentage in [0, 100].
type ProgressSink func(progress int, message string)
