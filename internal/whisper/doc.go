// Package whisper wraps the Whisper speech-recognition CLI.
//
// The transcriber consumes a mono 16kHz WAV file and produces timed segments
// whose timestamps are trustworthy but whose wording is approximate. The
// CLI's JSON output is parsed into align.Segment values; the SRT and text
// files it also writes are ignored.
//
// A command runner can be injected for tests so no real model is needed.
package whisper
