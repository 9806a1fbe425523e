package types

import (
	"github.com/sublab/subtitle-api/internal/database"
	"github.com/sublab/subtitle-api/internal/services/capabilities"
	"github.com/sublab/subtitle-api/internal/services/jobs"
	"github.com/sublab/subtitle-api/internal/services/subtitles"
	"github.com/sublab/subtitle-api/pkg/config"
)

// SubtitleProcessor executes a subtitle job. The job is already
// registered; the processor runs synchronously and resolves it through
// the registry.
type SubtitleProcessor interface {
	ProcessUpload(jobID, mediaPath, originalFilename, language string)
	ProcessYouTube(jobID, url, language string)
}

// CapabilityProber reports which external tools the server can use.
type CapabilityProber interface {
	Probe() *capabilities.Report
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	Config          *config.Config
	Registry        *jobs.Registry
	Processor       SubtitleProcessor
	Capabilities    CapabilityProber
	SubtitleService subtitles.SubtitleService
}
