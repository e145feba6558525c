// Package srt reads and writes SubRip subtitle files.
//
// Output follows the standard numbered block form, one block per cue:
//
//	index
//	HH:MM:SS,mmm --> HH:MM:SS,mmm
//	text
//
// Indices are 1-based and sequential in output order, independent of any
// gaps in the source material. Timestamps are millisecond precision and
// truncated, not rounded.
package srt
