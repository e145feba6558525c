// Package media wraps the ffmpeg and ffprobe command line tools for the
// two jobs the pipeline needs: probing a source container and extracting
// its audio track as a mono 16kHz WAV the transcriber accepts.
package media
