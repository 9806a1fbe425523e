package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment overrides, e.g. SUBTITLE_SERVER_PORT=9090
		viper.SetEnvPrefix("SUBTITLE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// Missing config file is fine, defaults and env vars apply.
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetInt64("server.max_upload_bytes") <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}

	return nil
}

// setDefaults sets sensible default values for all configuration keys
func setDefaults() {
	// Server
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.max_header_bytes", 1<<20)
	viper.SetDefault("server.max_upload_bytes", int64(2<<30))

	// Database (subtitle cache)
	viper.SetDefault("database.path", "./data/subtitles.db")
	viper.SetDefault("database.log_queries", false)

	// Storage
	viper.SetDefault("storage.temp_dir", filepath.Join(os.TempDir(), "video_subtitle_uploads"))

	// Processing
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffmpeg_timeout", "10m")

	// Transcription
	viper.SetDefault("transcription.whisper_path", "")
	viper.SetDefault("transcription.model_path", "./models/ggml-tiny.bin")
	viper.SetDefault("transcription.threads", 4)
	viper.SetDefault("transcription.timeout", "0s")
	viper.SetDefault("transcription.enable_vad", true)

	// Acquisition
	viper.SetDefault("acquisition.ytdlp_path", "yt-dlp")
	viper.SetDefault("acquisition.youtubedl_path", "youtube-dl")
	viper.SetDefault("acquisition.fetch_timeout", "10m")
	viper.SetDefault("acquisition.max_size", int64(2<<30))

	// Jobs
	viper.SetDefault("jobs.retention", "24h")
	viper.SetDefault("jobs.cleanup_interval", "1h")

	// Rate limiting
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 5)
	viper.SetDefault("rate_limiting.burst", 10)
}
