// Package align maps timed transcription segments onto script chunks.
//
// Segments are processed in sequential batches. Within a batch every segment
// scores all unconsumed chunks in parallel; the results are then applied one
// segment at a time in original order, which is what guarantees no chunk is
// ever assigned twice. The consumption set is the only shared mutable state
// and is never written while scoring runs, so the phase boundary is the sole
// synchronization point.
//
// Alignment never fails: when the script runs out of chunks the remaining
// segments are dropped and the output is simply shorter than the input.
package align
