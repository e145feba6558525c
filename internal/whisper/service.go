package whisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"scriptsync/internal/align"
)

// DefaultBinary is the transcriber executable resolved from PATH.
const DefaultBinary = "whisper"

// Service provides speech transcription via the whisper CLI.
type Service struct {
	binary        string
	model         string
	language      string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service. Empty binary and model select
// the defaults; empty language lets the model auto-detect.
func NewService(binary, model, language string) *Service {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Service{binary: binary, model: model, language: language}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model tier for logging.
func (s *Service) Model() string {
	return s.model
}

// Transcribe runs the transcriber over a WAV file and returns its timed
// segments in chronological order. outputDir receives the CLI's result
// files; the JSON result is parsed and returned.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir string) ([]align.Segment, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, fmt.Errorf("transcribe: audio path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := s.buildArgs(audioPath, outputDir)
	if err := s.run(ctx, s.binary, args...); err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	segments, err := ParseSegmentsFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisper result: %w", err)
	}
	return segments, nil
}

func (s *Service) buildArgs(audioPath, outputDir string) []string {
	args := []string{
		audioPath,
		"--model", s.model,
		"--task", "transcribe",
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if lang := strings.TrimSpace(s.language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
