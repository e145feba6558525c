// Package script parses authoritative script text into dialogue lines and
// breaks those lines into bounded comparison chunks for alignment.
//
// A script is plain text where each dialogue block starts at the beginning of
// a line with an all-caps speaker label, an optional parenthetical aside, and
// a colon. The utterance may span multiple physical lines until the next
// label or end of text.
//
// Chunking splits each utterance into sentences (via a Segmenter) and then
// subdivides long sentences on punctuation or fixed word windows. Chunk order
// follows script order exactly; the aligner relies on that order for its
// fallback scan.
package script
