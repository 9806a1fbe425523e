package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Processing    ProcessingConfig    `mapstructure:"processing"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Acquisition   AcquisitionConfig   `mapstructure:"acquisition"`
	Jobs          JobsConfig          `mapstructure:"jobs"`
	RateLimiting  RateLimitConfig     `mapstructure:"rate_limiting"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains subtitle cache database settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// StorageConfig contains temporary file settings
type StorageConfig struct {
	TempDir string `mapstructure:"temp_dir"`
}

// ProcessingConfig contains media processing settings
type ProcessingConfig struct {
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
}

// TranscriptionConfig contains speech recognition settings
type TranscriptionConfig struct {
	WhisperPath string        `mapstructure:"whisper_path"`
	ModelPath   string        `mapstructure:"model_path"`
	Threads     int           `mapstructure:"threads"`
	Timeout     time.Duration `mapstructure:"timeout"` // 0 = unlimited
	EnableVAD   bool          `mapstructure:"enable_vad"`
}

// AcquisitionConfig contains remote video fetch settings
type AcquisitionConfig struct {
	YtDlpPath     string        `mapstructure:"ytdlp_path"`
	YoutubeDlPath string        `mapstructure:"youtubedl_path"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	MaxSize       int64         `mapstructure:"max_size"`
}

// JobsConfig contains job registry settings
type JobsConfig struct {
	Retention       time.Duration `mapstructure:"retention"`        // terminal job lifetime, 0 = keep forever
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // sweep cadence
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}
