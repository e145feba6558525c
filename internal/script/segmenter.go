package script

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Segmenter splits an utterance into sentences. The chunker consumes it as a
// black-box capability; tests substitute simpler implementations.
type Segmenter interface {
	Split(text string) []string
}

type punktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSegmenter returns the default sentence segmenter, backed by the trained
// English Punkt tokenizer.
func NewSegmenter() (Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	return &punktSegmenter{tokenizer: tokenizer}, nil
}

func (s *punktSegmenter) Split(text string) []string {
	var out []string
	for _, sentence := range s.tokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(sentence.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
