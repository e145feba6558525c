package config

import (
	"path/filepath"
	"strings"
)

// normalize trims and lowercases enum-like fields and expands every path to
// an absolute form. Called before Validate so validation sees final values.
func (c *Config) normalize() error {
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = "whisper"
	}
	c.Whisper.Model = strings.ToLower(strings.TrimSpace(c.Whisper.Model))
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	c.Whisper.Language = strings.ToLower(strings.TrimSpace(c.Whisper.Language))

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	for _, field := range []*string{
		&c.Paths.OutputDir,
		&c.Paths.WorkDir,
		&c.Paths.WatchDir,
		&c.Paths.CacheDir,
		&c.TranscriptCache.Path,
	} {
		value := strings.TrimSpace(*field)
		if value == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(value)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if c.Paths.WorkDir == "" {
		c.Paths.WorkDir = defaultStateDir("work")
	}
	if c.Paths.CacheDir == "" {
		c.Paths.CacheDir = defaultStateDir("cache")
	}
	if c.TranscriptCache.Path == "" {
		c.TranscriptCache.Path = filepath.Join(c.Paths.CacheDir, "transcripts.db")
	}
	return nil
}
