package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Common errors
var (
	ErrBinaryNotFound = errors.New("whisper binary not found")
	ErrModelNotFound  = errors.New("whisper model not found")
	ErrInvocation     = errors.New("whisper invocation failed")
)

// Config configures the whisper-cli client
type Config struct {
	BinaryPath string        // whisper-cli binary (whisper.cpp)
	ModelPath  string        // ggml model file
	Threads    int           // worker threads passed to the binary
	Timeout    time.Duration // 0 = no timeout
}

// Segment is one recognized span with millisecond offsets.
type Segment struct {
	StartMs int64
	EndMs   int64
	Text    string
}

// Result holds the output of one transcription call. Segments may be
// empty while Text is populated when the binary produced only a flat
// transcript.
type Result struct {
	Segments []Segment
	Text     string
}

// Client invokes whisper-cli as a subprocess
type Client struct {
	config Config
}

// NewClient creates a new whisper client
func NewClient(config Config) *Client {
	if config.BinaryPath == "" {
		// whisper-cli is the Homebrew name, main the whisper.cpp build output.
		if _, err := exec.LookPath("whisper-cli"); err == nil {
			config.BinaryPath = "whisper-cli"
		} else {
			config.BinaryPath = "main"
		}
	}
	if config.Threads <= 0 {
		config.Threads = 4
	}
	return &Client{config: config}
}

// Available reports whether the binary and model are both present.
func (c *Client) Available() bool {
	if _, err := exec.LookPath(c.config.BinaryPath); err != nil {
		return false
	}
	if c.config.ModelPath == "" {
		return false
	}
	if _, err := os.Stat(c.config.ModelPath); err != nil {
		return false
	}
	return true
}

// Transcribe runs recognition over the full audio file with word-level
// timing enabled and returns per-segment timings parsed from the JSON
// output file. The call blocks for the duration of recognition.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (*Result, error) {
	if _, err := exec.LookPath(c.config.BinaryPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBinaryNotFound, c.config.BinaryPath)
	}
	if _, err := os.Stat(c.config.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, c.config.ModelPath)
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	args := []string{
		"-m", c.config.ModelPath,
		"-f", audioPath,
		"-l", language,
		"-t", strconv.Itoa(c.config.Threads),
		"-oj",  // JSON output with per-segment offsets
		"-ojf", // full JSON, includes word-level timings
		"-of", outputPrefix,
	}

	cmd := exec.CommandContext(ctx, c.config.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v (stderr: %s)", ErrInvocation, err, truncate(stderr.String(), 512))
	}

	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	result, err := parseOutputFile(jsonPath)
	if err != nil {
		// Degenerate output: fall back to whatever flat text the binary
		// printed, with no segment structure.
		log.Printf("[WARN] Failed to parse whisper JSON output: %v, falling back to stdout text", err)
		return &Result{Text: strings.TrimSpace(stdout.String())}, nil
	}
	return result, nil
}

// whisperOutput mirrors the whisper.cpp JSON output file structure.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseOutputFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var output whisperOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, err
	}

	result := &Result{}
	var fullText strings.Builder
	for _, entry := range output.Transcription {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, Segment{
			StartMs: entry.Offsets.From,
			EndMs:   entry.Offsets.To,
			Text:    text,
		})
		if fullText.Len() > 0 {
			fullText.WriteString(" ")
		}
		fullText.WriteString(text)
	}
	result.Text = fullText.String()
	return result, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
