package script

import (
	"regexp"
	"strings"
)

// DefaultMaxWords is the default upper bound on words per chunk.
const DefaultMaxWords = 10

// Chunk is a bounded unit of exact script text attributed to a speaker. Its
// position in the chunk sequence is its identity for consumption tracking
// during alignment; chunks are never reordered.
type Chunk struct {
	Speaker string
	Text    string
}

var phraseDelimRe = regexp.MustCompile(`[,;()]`)

// ChunkDialog breaks dialogue lines into comparison chunks. Each line is
// split into sentences by seg; sentences longer than maxWords are subdivided
// by chunkSentence. Emission order is dialogue order, sentences within a
// line, sub-splits within a sentence.
func ChunkDialog(lines []DialogLine, seg Segmenter, maxWords int) []Chunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	var chunks []Chunk
	for _, line := range lines {
		for _, sentence := range seg.Split(line.Text) {
			chunks = append(chunks, chunkSentence(sentence, line.Speaker, maxWords)...)
		}
	}
	return chunks
}

// chunkSentence applies the three splitting rules in order: keep short
// sentences whole, otherwise split on internal punctuation, otherwise fall
// back to fixed word windows. Punctuation phrases are not re-checked against
// maxWords, so a phrase may still exceed it.
func chunkSentence(sentence, speaker string, maxWords int) []Chunk {
	words := strings.Fields(sentence)
	if len(words) <= maxWords {
		return []Chunk{{Speaker: speaker, Text: sentence}}
	}

	var phrases []string
	for _, phrase := range phraseDelimRe.Split(sentence, -1) {
		if phrase = strings.TrimSpace(phrase); phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	if len(phrases) > 1 {
		chunks := make([]Chunk, 0, len(phrases))
		for _, phrase := range phrases {
			chunks = append(chunks, Chunk{Speaker: speaker, Text: phrase})
		}
		return chunks
	}

	var chunks []Chunk
	for start := 0; start < len(words); start += maxWords {
		end := min(start+maxWords, len(words))
		chunks = append(chunks, Chunk{Speaker: speaker, Text: strings.Join(words[start:end], " ")})
	}
	return chunks
}
