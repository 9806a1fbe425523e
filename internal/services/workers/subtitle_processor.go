package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sublab/subtitle-api/internal/messages"
	"github.com/sublab/subtitle-api/internal/models"
	"github.com/sublab/subtitle-api/internal/services/acquisition"
	"github.com/sublab/subtitle-api/internal/services/jobs"
	"github.com/sublab/subtitle-api/internal/services/subtitles"
	"github.com/sublab/subtitle-api/internal/services/transcription"
	"github.com/sublab/subtitle-api/pkg/srt"
)

// Acquirer fetches remote videos to local files.
type Acquirer interface {
	Acquire(ctx context.Context, url, destPath string) error
	Title(ctx context.Context, url string) string
}

// Pipeline runs the media-to-subtitle transcription stages.
type Pipeline interface {
	Transcribe(ctx context.Context, mediaPath, lang string, sink transcription.ProgressSink) (*transcription.Result, error)
}

// SubtitleProcessor executes subtitle generation jobs end to end: acquire
// media, transcribe, assemble the SRT document, cache it, and resolve the
// job. One processor handles both uploads and YouTube URLs.
type SubtitleProcessor struct {
	registry        *jobs.Registry
	acquirer        Acquirer
	pipeline        Pipeline
	cache           subtitles.SubtitleService
	recognizerReady func() bool
	tempDir         string
	jobTimeout      time.Duration
}

// NewSubtitleProcessor wires a processor. cache may be nil when the
// result cache is disabled; recognizerReady gates the placeholder path
// when the speech recognizer is not installed.
func NewSubtitleProcessor(
	registry *jobs.Registry,
	acquirer Acquirer,
	pipeline Pipeline,
	cache subtitles.SubtitleService,
	recognizerReady func() bool,
	tempDir string,
	jobTimeout time.Duration,
) *SubtitleProcessor {
	if recognizerReady == nil {
		recognizerReady = func() bool { return true }
	}
	return &SubtitleProcessor{
		registry:        registry,
		acquirer:        acquirer,
		pipeline:        pipeline,
		cache:           cache,
		recognizerReady: recognizerReady,
		tempDir:         tempDir,
		jobTimeout:      jobTimeout,
	}
}

// ProcessUpload generates subtitles for an already saved upload. The
// worker owns mediaPath's directory and removes it when done, on every
// exit path.
func (p *SubtitleProcessor) ProcessUpload(jobID, mediaPath, originalFilename, language string) {
	workDir := filepath.Dir(mediaPath)
	defer removeWorkDir(workDir)

	ctx, cancel := p.jobContext()
	defer cancel()

	p.registry.UpdateProgress(jobID, 1, messages.StartingUpload)

	base := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	if base == "" {
		base = "subtitle"
	}
	out := output{
		title:    base,
		filename: base + ".srt",
		source:   "upload",
	}

	if !p.recognizerReady() {
		log.Printf("[WARN] job %s: speech recognizer unavailable, producing placeholder", jobID)
		p.completePlaceholder(jobID, language, out, false)
		return
	}

	result, err := p.pipeline.Transcribe(ctx, mediaPath, language, p.progressSink(jobID))
	if err != nil {
		p.fail(jobID, err)
		return
	}
	p.finish(ctx, jobID, result, language, out)
}

// ProcessYouTube downloads the video at url and generates subtitles. A
// cached document for the same video and language short-circuits the
// whole pipeline.
func (p *SubtitleProcessor) ProcessYouTube(jobID, url, language string) {
	ctx, cancel := p.jobContext()
	defer cancel()

	fingerprint := acquisition.VideoID(url)

	if doc := p.lookupCache(ctx, fingerprint, language); doc != nil {
		p.registry.Complete(jobID, &models.JobResult{
			SRTContent: doc.Content,
			Filename:   doc.Filename,
		}, messages.SubtitleReady)
		return
	}

	p.registry.UpdateProgress(jobID, 2, messages.DownloadingVideo)

	workDir, err := os.MkdirTemp(p.tempDir, "subtitle-job-")
	if err != nil {
		p.fail(jobID, fmt.Errorf("create work directory: %w", err))
		return
	}
	defer removeWorkDir(workDir)

	mediaPath := filepath.Join(workDir, fingerprint+".mp4")
	if err := p.acquirer.Acquire(ctx, url, mediaPath); err != nil {
		p.fail(jobID, err)
		return
	}
	title := p.acquirer.Title(ctx, url)
	p.registry.UpdateProgress(jobID, 8, messages.DownloadDone)

	out := output{
		title:       title,
		filename:    title + ".srt",
		source:      "youtube",
		fingerprint: fingerprint,
	}

	if !p.recognizerReady() {
		log.Printf("[WARN] job %s: speech recognizer unavailable, producing placeholder", jobID)
		p.completePlaceholder(jobID, language, out, false)
		return
	}

	result, err := p.pipeline.Transcribe(ctx, mediaPath, language, p.progressSink(jobID))
	if err != nil {
		p.fail(jobID, err)
		return
	}
	p.finish(ctx, jobID, result, language, out)
}

// output describes the document being assembled for a job.
type output struct {
	title       string
	filename    string
	source      string
	fingerprint string // empty for uploads, video ID for YouTube
}

// finish assembles the final SRT document and resolves the job. No
// detected speech yields a placeholder document and a completed job,
// never a failure.
func (p *SubtitleProcessor) finish(ctx context.Context, jobID string, result *transcription.Result, language string, out output) {
	if result.NoSpeech() {
		log.Printf("[WARN] job %s: no speech detected", jobID)
		p.completePlaceholder(jobID, language, out, true)
		return
	}

	content := srt.PostProcess(srt.Render(result.Blocks))

	p.storeCache(ctx, &models.SubtitleDocument{
		Fingerprint:  out.fingerprint,
		Language:     language,
		Title:        out.title,
		Content:      content,
		Filename:     out.filename,
		Source:       out.source,
		SegmentCount: len(result.Blocks),
		Duration:     float64(result.DurationMs) / 1000,
	})

	p.registry.Complete(jobID, &models.JobResult{
		SRTContent: content,
		Filename:   out.filename,
	}, messages.SubtitleReady)
}

// completePlaceholder resolves the job with a synthetic document. Only a
// genuine no-speech result is cached; a missing recognizer is transient.
func (p *SubtitleProcessor) completePlaceholder(jobID, language string, out output, cacheIt bool) {
	content := srt.Placeholder(language)

	if cacheIt {
		p.storeCache(context.Background(), &models.SubtitleDocument{
			Fingerprint: out.fingerprint,
			Language:    language,
			Title:       out.title,
			Content:     content,
			Filename:    out.filename,
			Source:      out.source,
			Placeholder: true,
		})
	}

	p.registry.Complete(jobID, &models.JobResult{
		SRTContent: content,
		Filename:   out.filename,
	}, messages.PlaceholderCreated)
}

// fail translates an error into the job's localized failure state.
func (p *SubtitleProcessor) fail(jobID string, err error) {
	log.Printf("[ERROR] job %s failed: %v", jobID, err)

	var jobErr *models.StructuredJobError
	if errors.As(err, &jobErr) {
		p.registry.Fail(jobID, jobErr.Message, jobErr.Details)
		return
	}

	switch {
	case errors.Is(err, acquisition.ErrAcquisitionFailed), errors.Is(err, acquisition.ErrInvalidURL):
		p.registry.Fail(jobID, messages.DownloadFailed, err.Error())
	default:
		p.registry.Fail(jobID, messages.ProcessingFailed(err.Error()), err.Error())
	}
}

func (p *SubtitleProcessor) progressSink(jobID string) transcription.ProgressSink {
	return func(pct int, msg string) {
		p.registry.UpdateProgress(jobID, pct, msg)
	}
}

func (p *SubtitleProcessor) jobContext() (context.Context, context.CancelFunc) {
	if p.jobTimeout > 0 {
		return context.WithTimeout(context.Background(), p.jobTimeout)
	}
	return context.WithCancel(context.Background())
}

func (p *SubtitleProcessor) lookupCache(ctx context.Context, fingerprint, language string) *models.SubtitleDocument {
	if p.cache == nil || fingerprint == "" {
		return nil
	}
	doc, err := p.cache.Lookup(ctx, fingerprint, language)
	if err != nil {
		log.Printf("[WARN] subtitle cache lookup failed: %v", err)
		return nil
	}
	return doc
}

// storeCache persists the finished document. Cache trouble never fails a
// job.
func (p *SubtitleProcessor) storeCache(ctx context.Context, doc *models.SubtitleDocument) {
	if p.cache == nil || doc.Fingerprint == "" {
		return
	}
	if err := p.cache.Store(ctx, doc); err != nil {
		log.Printf("[WARN] subtitle cache store failed: %v", err)
	}
}

func removeWorkDir(dir string) {
	if dir == "" || dir == "." || dir == string(filepath.Separator) {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("[WARN] failed to remove work directory %s: %v", dir, err)
	}
}
