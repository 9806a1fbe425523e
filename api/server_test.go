package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublab/subtitle-api/api/types"
	"github.com/sublab/subtitle-api/internal/services/capabilities"
	"github.com/sublab/subtitle-api/internal/services/jobs"
	"github.com/sublab/subtitle-api/pkg/config"
)

type noopProcessor struct{}

func (noopProcessor) ProcessUpload(jobID, mediaPath, originalFilename, language string) {}
func (noopProcessor) ProcessYouTube(jobID, url, language string)                        {}

func newInitializedServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Storage.TempDir = t.TempDir()
	cfg.RateLimiting.Enabled = false

	server := NewServer(cfg.Server)
	server.SetDependencies(&types.Dependencies{
		Config:       cfg,
		Registry:     jobs.NewRegistry(),
		Processor:    noopProcessor{},
		Capabilities: capabilities.NewService(cfg),
	})
	require.NoError(t, server.Initialize())
	return server
}

func TestServerRoutes(t *testing.T) {
	server := newInitializedServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"version", http.MethodGet, "/version", http.StatusOK},
		{"setup", http.MethodGet, "/api/v1/setup", http.StatusOK},
		{"docs redirect", http.MethodGet, "/docs", http.StatusMovedPermanently},
		{"unknown route", http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
		{"unknown progress", http.MethodGet, "/api/v1/progress/abc", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			server.Engine().ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestInitializeRequiresDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0})
	assert.Error(t, server.Initialize())

	server = NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0})
	server.SetDependencies(&types.Dependencies{Config: &config.Config{}})
	assert.Error(t, server.Initialize())
}
