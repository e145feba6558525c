package textutil

import "strings"

// Ratio computes the Ratcliff/Obershelp similarity between two strings: twice
// the number of characters matched in common over the total number of
// characters. Matched characters are counted by taking the longest contiguous
// matching block and recursing on the unmatched pieces to its left and right.
// Identical strings score 1.0; strings with no characters in common score 0.0.
// Two empty strings score 1.0.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := 0
	for _, block := range matchingBlocks(ra, rb) {
		matched += block.size
	}
	return 2 * float64(matched) / float64(total)
}

// Score is the case-insensitive form of Ratio used for dialogue matching.
func Score(a, b string) float64 {
	return Ratio(strings.ToLower(a), strings.ToLower(b))
}

type matchBlock struct {
	aPos int
	bPos int
	size int
}

type matchSpan struct {
	aLo, aHi int
	bLo, bHi int
}

func matchingBlocks(a, b []rune) []matchBlock {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	stack := []matchSpan{{0, len(a), 0, len(b)}}
	var blocks []matchBlock
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		block := longestMatch(a, b2j, span)
		if block.size == 0 {
			continue
		}
		blocks = append(blocks, block)
		if span.aLo < block.aPos && span.bLo < block.bPos {
			stack = append(stack, matchSpan{span.aLo, block.aPos, span.bLo, block.bPos})
		}
		if block.aPos+block.size < span.aHi && block.bPos+block.size < span.bHi {
			stack = append(stack, matchSpan{block.aPos + block.size, span.aHi, block.bPos + block.size, span.bHi})
		}
	}
	return blocks
}

// longestMatch finds the longest contiguous block within the given span.
// Among equally long blocks the one starting earliest in a, then earliest in
// b, wins, which keeps the overall ratio deterministic.
func longestMatch(a []rune, b2j map[rune][]int, span matchSpan) matchBlock {
	best := matchBlock{aPos: span.aLo, bPos: span.bLo}
	runLengths := make(map[int]int)
	for i := span.aLo; i < span.aHi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < span.bLo {
				continue
			}
			if j >= span.bHi {
				break
			}
			k := runLengths[j-1] + 1
			next[j] = k
			if k > best.size {
				best = matchBlock{aPos: i - k + 1, bPos: j - k + 1, size: k}
			}
		}
		runLengths = next
	}
	return best
}
