package transcription

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sublab/subtitle-api/internal/messages"
	"github.com/sublab/subtitle-api/internal/models"
	"github.com/sublab/subtitle-api/internal/services/segmentation"
	"github.com/sublab/subtitle-api/pkg/srt"
	"github.com/sublab/subtitle-api/pkg/whisper"
)

// Stage progress boundaries. Each stage owns the range up to its boundary.
const (
	progressSetup     = 10
	progressExtracted = 20
	progressAnalyzed  = 30
	progressRecognize = 70
)

// degenerateBlockEndMs is the end timestamp of the synthetic block used
// when the recognizer returns flat text without segment timings.
const degenerateBlockEndMs = 5 * 60 * 1000

// audioSampleRate is the decode rate for silence analysis.
const audioSampleRate = 16000

// Result is the outcome of a transcription run. Zero blocks is a valid
// result meaning no speech was detected.
type Result struct {
	Blocks     []srt.Block
	DurationMs int64
	ChunkCount int
}

// NoSpeech reports whether the recognizer found nothing to transcribe.
func (r *Result) NoSpeech() bool {
	return len(r.Blocks) == 0
}

// Pipeline runs the extract, analyze, recognize, assemble stages over a
// media file.
type Pipeline struct {
	media      MediaProcessor
	recognizer Recognizer
	engine     *segmentation.Engine
	enableVAD  bool

	tickInterval time.Duration
}

// NewPipeline assembles a transcription pipeline.
func NewPipeline(media MediaProcessor, recognizer Recognizer, engine *segmentation.Engine, enableVAD bool) *Pipeline {
	return &Pipeline{
		media:        media,
		recognizer:   recognizer,
		engine:       engine,
		enableVAD:    enableVAD,
		tickInterval: 5 * time.Second,
	}
}

// Transcribe produces timed subtitle blocks for the media at mediaPath.
// Progress is reported through sink across the stage budget. A media file
// with no detectable speech returns an empty result, not an error.
func (p *Pipeline) Transcribe(ctx context.Context, mediaPath, lang string, sink ProgressSink) (*Result, error) {
	report := func(pct int, msg string) {
		if sink != nil {
			sink(pct, msg)
		}
	}

	report(2, messages.StartingVideo)
	meta, err := p.media.GetMetadata(ctx, mediaPath)
	if err != nil {
		return nil, models.NewExtractionError("media_probe_failed",
			messages.ExtractionFailed, fmt.Sprintf("probe media: %v", err), err)
	}
	durationMs := int64(meta.Duration * 1000)
	report(progressSetup, messages.ExtractingAudio)

	audioPath := audioPathFor(mediaPath)
	if err := p.media.ExtractAudio(ctx, mediaPath, audioPath); err != nil {
		return nil, models.NewExtractionError("audio_extraction_failed",
			messages.ExtractionFailed, fmt.Sprintf("extract audio: %v", err), err)
	}
	defer os.Remove(audioPath)
	report(progressExtracted, messages.AnalyzingAudio)

	chunkCount := p.analyze(ctx, audioPath)
	report(progressAnalyzed, messages.RecognizingSpeech)

	recognized, err := p.recognize(ctx, audioPath, lang, report)
	if err != nil {
		return nil, models.NewRecognitionError("speech_recognition_failed",
			messages.RecognitionFailed, fmt.Sprintf("recognize speech: %v", err), err)
	}
	report(progressRecognize, messages.AssemblingSubtitles)

	blocks := blocksFromSegments(recognized.Segments)
	if len(blocks) == 0 && strings.TrimSpace(recognized.Text) != "" {
		// Flat text with no timings gets one wide block so the output is
		// still a usable document.
		blocks = []srt.Block{{
			Index: 1,
			Start: 0,
			End:   degenerateBlockEndMs,
			Text:  strings.TrimSpace(recognized.Text),
		}}
	}

	return &Result{
		Blocks:     blocks,
		DurationMs: durationMs,
		ChunkCount: chunkCount,
	}, nil
}

// analyze decodes the audio and runs silence segmentation. The chunk
// statistics feed logs and the result metadata; recognition itself runs
// over the whole file. Analysis failures are not fatal.
func (p *Pipeline) analyze(ctx context.Context, audioPath string) int {
	pcm, err := p.media.DecodePCM(ctx, audioPath, audioSampleRate)
	if err != nil {
		log.Printf("[WARN] audio analysis skipped: %v", err)
		return 0
	}
	if p.enableVAD {
		pcm = segmentation.ApplyGate(pcm)
	}
	chunks := p.engine.Segment(pcm)
	log.Printf("[DEBUG] silence analysis: %d chunks over %dms", len(chunks), pcm.DurationMs())
	return len(chunks)
}

// recognitionTicks are the progress values published while recognition
// blocks, one per tick interval.
var recognitionTicks = []int{35, 40, 45, 50, 55, 60, 65}

// recognize runs the recognizer while a ticker publishes interim
// progress. The ticker stops when the call returns, success or not.
func (p *Pipeline) recognize(ctx context.Context, audioPath, lang string, report func(int, string)) (*whisper.Result, error) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(p.tickInterval)
		defer ticker.Stop()
		for _, pct := range recognitionTicks {
			select {
			case <-done:
				return
			case <-ticker.C:
				report(pct, messages.RecognizingPercent(pct))
			}
		}
	}()

	res, err := p.recognizer.Transcribe(ctx, audioPath, CanonicalLanguage(lang))
	close(done)
	return res, err
}

// blocksFromSegments converts recognizer segments to subtitle blocks,
// dropping blank segments and trimming text.
func blocksFromSegments(segments []whisper.Segment) []srt.Block {
	blocks := make([]srt.Block, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		blocks = append(blocks, srt.Block{
			Index: len(blocks) + 1,
			Start: seg.StartMs,
			End:   seg.EndMs,
			Text:  text,
		})
	}
	return blocks
}

// audioPathFor derives the extracted audio path next to the media file.
func audioPathFor(mediaPath string) string {
	ext := filepath.Ext(mediaPath)
	return strings.TrimSuffix(mediaPath, ext) + ".wav"
}
