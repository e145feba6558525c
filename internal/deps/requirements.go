package deps

import (
	"scriptsync/internal/config"
)

// Requirements builds the dependency list for the configured pipeline. The
// transcriber and ffmpeg are always required; ffprobe only improves stream
// selection, so it stays optional.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Whisper",
			Command:     cfg.Whisper.Binary,
			Description: "Speech transcription",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Audio extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Media stream inspection",
			Optional:    true,
		},
	}
}

// Check runs the standard dependency checks for the configured pipeline.
func Check(cfg *config.Config) []Status {
	return CheckBinaries(Requirements(cfg))
}
