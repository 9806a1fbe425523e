package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublab/subtitle-api/api"
	"github.com/sublab/subtitle-api/api/types"
	"github.com/sublab/subtitle-api/internal/database"
	"github.com/sublab/subtitle-api/internal/services/capabilities"
	"github.com/sublab/subtitle-api/internal/services/jobs"
	"github.com/sublab/subtitle-api/internal/services/segmentation"
	"github.com/sublab/subtitle-api/internal/services/subtitles"
	"github.com/sublab/subtitle-api/internal/services/transcription"
	"github.com/sublab/subtitle-api/internal/services/workers"
	"github.com/sublab/subtitle-api/pkg/config"
	"github.com/sublab/subtitle-api/pkg/ffmpeg"
	"github.com/sublab/subtitle-api/pkg/whisper"
)

// stubAcquirer stands in for yt-dlp: it writes a small file and reports a
// fixed title.
type stubAcquirer struct{}

func (stubAcquirer) Acquire(_ context.Context, _, destPath string) error {
	return os.WriteFile(destPath, []byte("video bytes"), 0644)
}

func (stubAcquirer) Title(_ context.Context, _ string) string { return "Integration Clip" }

// stubMedia stands in for ffmpeg.
type stubMedia struct{}

func (stubMedia) GetMetadata(_ context.Context, _ string) (*ffmpeg.MediaMetadata, error) {
	return &ffmpeg.MediaMetadata{Duration: 6, HasAudio: true}, nil
}

func (stubMedia) ExtractAudio(_ context.Context, _, outputPath string) error {
	return os.WriteFile(outputPath, []byte("wav"), 0644)
}

func (stubMedia) DecodePCM(_ context.Context, _ string, sampleRate int) (*ffmpeg.PCMAudio, error) {
	return &ffmpeg.PCMAudio{Samples: make([]float32, sampleRate*6), SampleRate: sampleRate}, nil
}

// stubRecognizer stands in for whisper-cli.
type stubRecognizer struct{}

func (stubRecognizer) Available() bool { return true }

func (stubRecognizer) Transcribe(_ context.Context, _, _ string) (*whisper.Result, error) {
	return &whisper.Result{
		Segments: []whisper.Segment{
			{StartMs: 0, EndMs: 2500, Text: "integration test line one"},
			{StartMs: 2500, EndMs: 5500, Text: "integration test line two"},
		},
		Text: "integration test line one integration test line two",
	}, nil
}

type suite struct {
	server *api.Server
	cache  subtitles.SubtitleService
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Storage.TempDir = t.TempDir()
	cfg.RateLimiting.Enabled = false

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cache := subtitles.NewService(subtitles.NewRepository(db.DB))
	registry := jobs.NewRegistry()
	engine := segmentation.NewEngine(segmentation.DefaultParams())
	pipeline := transcription.NewPipeline(stubMedia{}, stubRecognizer{}, engine, false)

	processor := workers.NewSubtitleProcessor(
		registry, stubAcquirer{}, pipeline, cache, nil, cfg.Storage.TempDir, 0)

	server := api.NewServer(cfg.Server)
	server.SetDependencies(&types.Dependencies{
		DB:              db,
		Config:          cfg,
		Registry:        registry,
		Processor:       processor,
		Capabilities:    capabilities.NewService(cfg),
		SubtitleService: cache,
	})
	require.NoError(t, server.Initialize())

	return &suite{server: server, cache: cache}
}

func (s *suite) do(method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.server.Engine().ServeHTTP(w, req)
	return w
}

func TestYouTubeJobEndToEnd(t *testing.T) {
	s := setupSuite(t)

	body, _ := json.Marshal(types.YouTubeProcessRequest{
		YouTubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Language:   "en",
	})
	w := s.do(http.MethodPost, "/api/v1/process/youtube", body)
	require.Equal(t, http.StatusOK, w.Code)

	var accepted types.JobAcceptedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.TaskID)

	// Poll until the background job finishes.
	var final types.ProgressResponse
	require.Eventually(t, func() bool {
		resp := s.do(http.MethodGet, "/api/v1/progress/"+accepted.TaskID, nil)
		if resp.Code != http.StatusOK {
			return false
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &final))
		return final.Status == "completed" || final.Status == "error"
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, "completed", final.Status)
	assert.Equal(t, 100, final.Progress)
	require.NotNil(t, final.Result)
	assert.Equal(t, "Integration Clip.srt", final.Result.Filename)
	assert.Contains(t, final.Result.SRTContent, "integration test line one")
	assert.Contains(t, final.Result.SRTContent, "00:00:02,500 --> 00:00:05,500")

	// The document landed in the cache under the video ID.
	doc, err := s.cache.Lookup(context.Background(), "dQw4w9WgXcQ", "en")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Integration Clip", doc.Title)
	assert.Equal(t, 2, doc.SegmentCount)

	// A repeat request completes from the cache.
	w = s.do(http.MethodPost, "/api/v1/process/youtube", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))

	require.Eventually(t, func() bool {
		resp := s.do(http.MethodGet, "/api/v1/progress/"+accepted.TaskID, nil)
		_ = json.Unmarshal(resp.Body.Bytes(), &final)
		return final.Status == "completed"
	}, 5*time.Second, 10*time.Millisecond)
	require.NotNil(t, final.Result)
	assert.Contains(t, final.Result.SRTContent, "integration test line one")
}

func TestInvalidURLRejectedBeforeDispatch(t *testing.T) {
	s := setupSuite(t)

	body, _ := json.Marshal(types.YouTubeProcessRequest{
		YouTubeURL: "https://vimeo.com/12345",
		Language:   "en",
	})
	w := s.do(http.MethodPost, "/api/v1/process/youtube", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
