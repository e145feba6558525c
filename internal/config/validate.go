package config

import (
	"fmt"

	"scriptsync/internal/whisper"
)

// Validate rejects configuration the pipeline cannot run with.
func (c *Config) Validate() error {
	if !whisper.ValidModel(c.Whisper.Model) {
		return fmt.Errorf("whisper model: unknown value %q (expected one of %v)", c.Whisper.Model, whisper.Models())
	}
	if t := c.Alignment.SimilarityThreshold; t <= 0 || t >= 1 {
		return fmt.Errorf("alignment similarity_threshold: %v outside (0, 1)", t)
	}
	if c.Alignment.MaxWordsPerChunk < 1 {
		return fmt.Errorf("alignment max_words_per_chunk: %d must be at least 1", c.Alignment.MaxWordsPerChunk)
	}
	if c.Alignment.Workers < 1 {
		return fmt.Errorf("alignment workers: %d must be at least 1", c.Alignment.Workers)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
