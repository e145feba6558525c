// Package transcriptcache persists transcription results in SQLite so a
// media file is only sent through the transcriber once per model and
// language. Entries are keyed by the audio content hash, not the file
// path, so renames and copies still hit the cache.
package transcriptcache
