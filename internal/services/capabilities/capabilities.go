// Package capabilities reports which external tools the server can use,
// so clients can warn before submitting work that would fail.
package capabilities

import (
	"os"
	"os/exec"

	"github.com/sublab/subtitle-api/internal/services/transcription"
	"github.com/sublab/subtitle-api/pkg/config"
)

// Tool describes the availability of one external dependency.
type Tool struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Available bool   `json:"available"`
}

// Language is a supported recognition language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Report is the full capability snapshot returned by the setup endpoint.
type Report struct {
	SpeechRecognition bool       `json:"speech_recognition"`
	AudioExtraction   bool       `json:"audio_extraction"`
	YouTubeDownload   bool       `json:"youtube_download"`
	VADEnabled        bool       `json:"vad_enabled"`
	ModelReady        bool       `json:"model_ready"`
	Tools             []Tool     `json:"tools"`
	Languages         []Language `json:"languages"`
}

// languageNames are the display names the UI shows, Arabic-first to
// match the product language.
var languageNames = map[string]string{
	"ar": "العربية",
	"en": "الإنجليزية",
	"tr": "التركية",
	"fr": "الفرنسية",
	"es": "الإسبانية",
	"de": "الألمانية",
}

// Service probes the host environment for external tools.
type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Probe checks every external dependency and assembles the report.
func (s *Service) Probe() *Report {
	whisperTool := probeTool("whisper-cli", s.cfg.Transcription.WhisperPath)
	ffmpegTool := probeTool("ffmpeg", s.cfg.Processing.FFmpegPath)
	ffprobeTool := probeTool("ffprobe", s.cfg.Processing.FFprobePath)
	ytdlpTool := probeTool("yt-dlp", s.cfg.Acquisition.YtDlpPath)
	youtubedlTool := probeTool("youtube-dl", s.cfg.Acquisition.YoutubeDlPath)

	modelReady := fileExists(s.cfg.Transcription.ModelPath)

	languages := make([]Language, 0, len(languageNames))
	for _, code := range transcription.SupportedLanguages() {
		languages = append(languages, Language{Code: code, Name: languageNames[code]})
	}

	return &Report{
		SpeechRecognition: whisperTool.Available && modelReady,
		AudioExtraction:   ffmpegTool.Available && ffprobeTool.Available,
		YouTubeDownload:   ytdlpTool.Available || youtubedlTool.Available,
		VADEnabled:        s.cfg.Transcription.EnableVAD,
		ModelReady:        modelReady,
		Tools:             []Tool{whisperTool, ffmpegTool, ffprobeTool, ytdlpTool, youtubedlTool},
		Languages:         languages,
	}
}

// probeTool resolves a binary either at its configured path or on PATH.
func probeTool(name, configuredPath string) Tool {
	tool := Tool{Name: name, Path: configuredPath}

	if configuredPath != "" && fileExists(configuredPath) {
		tool.Available = true
		return tool
	}

	candidate := configuredPath
	if candidate == "" {
		candidate = name
	}
	if resolved, err := exec.LookPath(candidate); err == nil {
		tool.Path = resolved
		tool.Available = true
	}
	return tool
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
