// Package textutil provides text comparison and filename sanitization helpers.
//
// The primary use cases are:
//   - Scoring how closely a transcribed phrase matches a line of script text
//   - Sanitizing media-derived base names for safe filesystem use
//
// Similarity uses the Ratcliff/Obershelp ratio: the longest contiguous matching
// block between the two strings is found, the remainders to its left and right
// are matched recursively, and the score is twice the matched character count
// over the combined length. The alignment threshold defaults are tuned against
// this exact ratio, so it must not be swapped for a different edit-distance
// metric.
package textutil
