package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sublab/subtitle-api/api"
	"github.com/sublab/subtitle-api/api/types"
	"github.com/sublab/subtitle-api/internal/database"
	"github.com/sublab/subtitle-api/internal/services/acquisition"
	"github.com/sublab/subtitle-api/internal/services/capabilities"
	"github.com/sublab/subtitle-api/internal/services/cleanup"
	"github.com/sublab/subtitle-api/internal/services/jobs"
	"github.com/sublab/subtitle-api/internal/services/segmentation"
	"github.com/sublab/subtitle-api/internal/services/subtitles"
	"github.com/sublab/subtitle-api/internal/services/transcription"
	"github.com/sublab/subtitle-api/internal/services/workers"
	"github.com/sublab/subtitle-api/pkg/config"
	"github.com/sublab/subtitle-api/pkg/ffmpeg"
	"github.com/sublab/subtitle-api/pkg/whisper"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the subtitle generation API server.

Example:
  subtitle-api serve
  subtitle-api serve --port 8080
  subtitle-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	if err := os.MkdirAll(cfg.Storage.TempDir, 0755); err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	server := api.NewServer(cfg.Server)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go cleanup.NewSweeper(deps.Registry, cfg.Jobs.Retention, cfg.Jobs.CleanupInterval).Run(sweepCtx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[DEBUG] server listening on %s:%d", cfg.Server.Host, cfg.Server.Port)

	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}

// buildDependencies wires every service the handlers need. The subtitle
// cache database is optional; a failure to open it degrades to cacheless
// operation rather than refusing to start.
func buildDependencies(cfg *config.Config) (*types.Dependencies, *database.DB, error) {
	registry := jobs.NewRegistry()

	media := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	if err := media.ValidateBinaries(); err != nil {
		log.Printf("[WARN] media tools unavailable: %v", err)
	}

	recognizer := whisper.NewClient(whisper.Config{
		BinaryPath: cfg.Transcription.WhisperPath,
		ModelPath:  cfg.Transcription.ModelPath,
		Threads:    cfg.Transcription.Threads,
		Timeout:    cfg.Transcription.Timeout,
	})

	engine := segmentation.NewEngine(segmentation.DefaultParams())
	pipeline := transcription.NewPipeline(media, recognizer, engine, cfg.Transcription.EnableVAD)
	acquirer := acquisition.NewService(cfg)

	var db *database.DB
	var cache subtitles.SubtitleService
	if cfg.Database.Path != "" {
		var err error
		db, err = database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
		if err != nil {
			log.Printf("[WARN] subtitle cache disabled: %v", err)
		} else {
			cache = subtitles.NewService(subtitles.NewRepository(db.DB))
		}
	}

	processor := workers.NewSubtitleProcessor(
		registry,
		acquirer,
		pipeline,
		cache,
		recognizer.Available,
		cfg.Storage.TempDir,
		0, // jobs run to completion; the recognizer enforces its own timeout
	)

	deps := &types.Dependencies{
		Config:          cfg,
		Registry:        registry,
		Processor:       processor,
		Capabilities:    capabilities.NewService(cfg),
		SubtitleService: cache,
	}
	if db != nil {
		deps.DB = db
	}
	return deps, db, nil
}
