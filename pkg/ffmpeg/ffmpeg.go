package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}
	return nil
}

// ExtractAudio extracts the audio track of a media container into a
// 16kHz mono 16-bit PCM WAV file suitable for speech recognition. The
// container must carry at least one audio stream.
func (f *FFmpeg) ExtractAudio(ctx context.Context, mediaPath, outputPath string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	metadata, err := f.GetMetadata(ctx, mediaPath)
	if err != nil {
		return err
	}
	if !metadata.HasAudio {
		return fmt.Errorf("%w: %s", ErrNoAudioTrack, mediaPath)
	}

	args := []string{
		"-i", mediaPath,
		"-vn",              // Drop video
		"-acodec", "pcm_s16le",
		"-ar", "16000",     // Whisper expects 16kHz
		"-ac", "1",         // Mono
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError("audio_extraction", mediaPath, err, stderr.String())
	}

	if info, err := os.Stat(outputPath); err != nil || info.Size() == 0 {
		return NewProcessingError("audio_extraction", mediaPath, ErrNoAudioTrack, stderr.String())
	}
	return nil
}

// DecodePCM decodes an audio file into mono 32-bit float samples at the
// given sample rate. The samples back silence analysis and segmentation.
func (f *FFmpeg) DecodePCM(ctx context.Context, audioPath string, sampleRate int) (*PCMAudio, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}

	args := []string{
		"-i", audioPath,
		"-f", "f32le", // 32-bit float little-endian
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-v", "quiet",
		"-",
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("pcm_decode", audioPath, err, stderr.String())
	}

	raw := stdout.Bytes()
	samples := make([]float32, 0, len(raw)/4)
	for i := 0; i+4 <= len(raw); i += 4 {
		bits := binary.LittleEndian.Uint32(raw[i : i+4])
		samples = append(samples, math.Float32frombits(bits))
	}

	return &PCMAudio{Samples: samples, SampleRate: sampleRate}, nil
}
