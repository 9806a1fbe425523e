package workers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublab/subtitle-api/internal/messages"
	"github.com/sublab/subtitle-api/internal/models"
	"github.com/sublab/subtitle-api/internal/services/acquisition"
	"github.com/sublab/subtitle-api/internal/services/jobs"
	"github.com/sublab/subtitle-api/internal/services/subtitles"
	"github.com/sublab/subtitle-api/internal/services/transcription"
	"github.com/sublab/subtitle-api/pkg/srt"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type fakeAcquirer struct {
	err      error
	title    string
	acquired int
}

func (f *fakeAcquirer) Acquire(_ context.Context, _, destPath string) error {
	f.acquired++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, []byte("video"), 0644)
}

func (f *fakeAcquirer) Title(_ context.Context, _ string) string {
	if f.title == "" {
		return "youtube_video"
	}
	return f.title
}

type fakePipeline struct {
	result *transcription.Result
	err    error
	calls  int
}

func (f *fakePipeline) Transcribe(_ context.Context, _, _ string, sink transcription.ProgressSink) (*transcription.Result, error) {
	f.calls++
	if sink != nil {
		sink(30, messages.RecognizingSpeech)
		sink(70, messages.AssemblingSubtitles)
	}
	return f.result, f.err
}

type fakeCache struct {
	docs map[string]*models.SubtitleDocument
}

func newFakeCache() *fakeCache {
	return &fakeCache{docs: make(map[string]*models.SubtitleDocument)}
}

func (f *fakeCache) Lookup(_ context.Context, fingerprint, language string) (*models.SubtitleDocument, error) {
	doc, ok := f.docs[fingerprint]
	if !ok || doc.Placeholder || doc.Language != language {
		return nil, nil
	}
	return doc, nil
}

func (f *fakeCache) Store(_ context.Context, doc *models.SubtitleDocument) error {
	f.docs[doc.Fingerprint] = doc
	return nil
}

func speechResult() *transcription.Result {
	return &transcription.Result{
		Blocks: []srt.Block{
			{Index: 1, Start: 0, End: 2000, Text: "hello"},
			{Index: 2, Start: 2000, End: 4000, Text: "world"},
		},
		DurationMs: 4000,
	}
}

func newProcessor(t *testing.T, acq *fakeAcquirer, pipe *fakePipeline, cache *fakeCache) (*SubtitleProcessor, *jobs.Registry, string) {
	t.Helper()
	tempDir := t.TempDir()
	registry := jobs.NewRegistry()
	var svc subtitles.SubtitleService
	if cache != nil {
		svc = cache
	}
	p := NewSubtitleProcessor(registry, acq, pipe, svc, nil, tempDir, 0)
	return p, registry, tempDir
}

func TestProcessYouTubeHappyPath(t *testing.T) {
	acq := &fakeAcquirer{title: "My Video"}
	pipe := &fakePipeline{result: speechResult()}
	cache := newFakeCache()
	p, registry, tempDir := newProcessor(t, acq, pipe, cache)

	job := registry.Create("")
	p.ProcessYouTube(job.ID, testURL, "ar")

	snap, err := registry.Snapshot(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, snap.Status)
	assert.Equal(t, 100, snap.Progress)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "My Video.srt", snap.Result.Filename)
	assert.Contains(t, snap.Result.SRTContent, "hello")
	assert.Contains(t, snap.Result.SRTContent, "00:00:02,000 --> 00:00:04,000")

	// Cached for the next request.
	doc := cache.docs["dQw4w9WgXcQ"]
	require.NotNil(t, doc)
	assert.Equal(t, 2, doc.SegmentCount)
	assert.Equal(t, float64(4), doc.Duration)
	assert.False(t, doc.Placeholder)

	// Work directory cleaned up.
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessYouTubeCacheHit(t *testing.T) {
	acq := &fakeAcquirer{}
	pipe := &fakePipeline{result: speechResult()}
	cache := newFakeCache()
	cache.docs["dQw4w9WgXcQ"] = &models.SubtitleDocument{
		Fingerprint: "dQw4w9WgXcQ",
		Language:    "ar",
		Content:     "cached content",
		Filename:    "cached.srt",
	}
	p, registry, _ := newProcessor(t, acq, pipe, cache)

	job := registry.Create("")
	p.ProcessYouTube(job.ID, testURL, "ar")

	snap, _ := registry.Snapshot(job.ID)
	assert.Equal(t, models.JobStatusCompleted, snap.Status)
	assert.Equal(t, "cached content", snap.Result.SRTContent)
	assert.Zero(t, acq.acquired)
	assert.Zero(t, pipe.calls)
}

func TestProcessYouTubeDownloadFailure(t *testing.T) {
	acq := &fakeAcquirer{err: acquisition.ErrAcquisitionFailed}
	p, registry, tempDir := newProcessor(t, acq, &fakePipeline{}, nil)

	job := registry.Create("")
	p.ProcessYouTube(job.ID, testURL, "ar")

	snap, _ := registry.Snapshot(job.ID)
	assert.Equal(t, models.JobStatusError, snap.Status)
	assert.Equal(t, messages.DownloadFailed, snap.Message)
	assert.NotEmpty(t, snap.Error)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessYouTubeNoSpeech(t *testing.T) {
	acq := &fakeAcquirer{}
	pipe := &fakePipeline{result: &transcription.Result{DurationMs: 4000}}
	cache := newFakeCache()
	p, registry, _ := newProcessor(t, acq, pipe, cache)

	job := registry.Create("")
	p.ProcessYouTube(job.ID, testURL, "ar")

	snap, _ := registry.Snapshot(job.ID)
	assert.Equal(t, models.JobStatusCompleted, snap.Status)
	assert.Equal(t, messages.PlaceholderCreated, snap.Message)
	assert.Equal(t, srt.Placeholder("ar"), snap.Result.SRTContent)

	doc := cache.docs["dQw4w9WgXcQ"]
	require.NotNil(t, doc)
	assert.True(t, doc.Placeholder)
}

func TestProcessYouTubeRecognizerUnavailable(t *testing.T) {
	acq := &fakeAcquirer{}
	pipe := &fakePipeline{result: speechResult()}
	cache := newFakeCache()
	p, registry, _ := newProcessor(t, acq, pipe, cache)
	p.recognizerReady = func() bool { return false }

	job := registry.Create("")
	p.ProcessYouTube(job.ID, testURL, "en")

	snap, _ := registry.Snapshot(job.ID)
	assert.Equal(t, models.JobStatusCompleted, snap.Status)
	assert.Equal(t, messages.PlaceholderCreated, snap.Message)
	assert.Zero(t, pipe.calls)

	// A missing recognizer is transient; nothing is cached.
	assert.Empty(t, cache.docs)
}

func TestProcessUploadHappyPath(t *testing.T) {
	pipe := &fakePipeline{result: speechResult()}
	p, registry, tempDir := newProcessor(t, &fakeAcquirer{}, pipe, nil)

	workDir := filepath.Join(tempDir, "upload-job")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	mediaPath := filepath.Join(workDir, "lecture.mp4")
	require.NoError(t, os.WriteFile(mediaPath, []byte("video"), 0644))

	job := registry.Create("")
	p.ProcessUpload(job.ID, mediaPath, "lecture.mp4", "en")

	snap, _ := registry.Snapshot(job.ID)
	assert.Equal(t, models.JobStatusCompleted, snap.Status)
	assert.Equal(t, "lecture.srt", snap.Result.Filename)

	_, err := os.Stat(workDir)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessUploadPipelineError(t *testing.T) {
	pipe := &fakePipeline{err: errors.New("ffmpeg exploded")}
	p, registry, tempDir := newProcessor(t, &fakeAcquirer{}, pipe, nil)

	workDir := filepath.Join(tempDir, "upload-job")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	mediaPath := filepath.Join(workDir, "clip.mp4")
	require.NoError(t, os.WriteFile(mediaPath, []byte("video"), 0644))

	job := registry.Create("")
	p.ProcessUpload(job.ID, mediaPath, "clip.mp4", "en")

	snap, _ := registry.Snapshot(job.ID)
	assert.Equal(t, models.JobStatusError, snap.Status)
	assert.Contains(t, snap.Error, "ffmpeg exploded")

	_, err := os.Stat(workDir)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessUploadStructuredError(t *testing.T) {
	pipe := &fakePipeline{err: models.NewExtractionError("no_audio", "الفيديو لا يحتوي على مسار صوتي", "no audio track", nil)}
	p, registry, tempDir := newProcessor(t, &fakeAcquirer{}, pipe, nil)

	workDir := filepath.Join(tempDir, "upload-job")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	mediaPath := filepath.Join(workDir, "clip.mp4")
	require.NoError(t, os.WriteFile(mediaPath, []byte("video"), 0644))

	job := registry.Create("")
	p.ProcessUpload(job.ID, mediaPath, "clip.mp4", "en")

	snap, _ := registry.Snapshot(job.ID)
	assert.Equal(t, models.JobStatusError, snap.Status)
	assert.Equal(t, "الفيديو لا يحتوي على مسار صوتي", snap.Message)
	assert.Equal(t, "no audio track", snap.Error)
}
