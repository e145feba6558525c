package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default returns the baseline configuration before any file is applied.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultStateDir("work"),
			CacheDir: defaultStateDir("cache"),
		},
		Whisper: Whisper{
			Binary: "whisper",
			Model:  "base",
		},
		Alignment: Alignment{
			SimilarityThreshold: 0.3,
			MaxWordsPerChunk:    10,
			Workers:             4,
			IncludeSpeaker:      true,
			UseScript:           true,
		},
		TranscriptCache: TranscriptCache{
			Enabled: true,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

func defaultStateDir(kind string) string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "scriptsync", kind)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "scriptsync", kind)
	}
	return filepath.Join(home, ".cache", "scriptsync", kind)
}
