// Command scriptsync generates SubRip subtitles for media files by aligning
// a written script against the timing of a speech transcription.
package main
