package pipeline

import "errors"

var (
	// ErrNoDialog indicates the script contained no recognizable speaker
	// dialog.
	ErrNoDialog = errors.New("no dialog found in script")
	// ErrNoSegments indicates transcription produced no usable segments.
	ErrNoSegments = errors.New("transcription produced no segments")
	// ErrNoAudio indicates the source container has no audio stream.
	ErrNoAudio = errors.New("no audio stream in source")
	// ErrExternalTool wraps failures from ffmpeg, ffprobe, or the
	// transcriber.
	ErrExternalTool = errors.New("external tool failed")
)
