package chunker

import (
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

// Segment is one chunk of a source text. Offset is the rune position of the
// segment start in the original text; consecutive segments always share
// their region between the next segment's start and this segment's end.
type Segment struct {
	Text   string
	Offset int
	Ord    int
}

// Split cuts text into overlapping segments of at most size runes. Segment i
// starts at exactly i*(size-overlap); the end prefers a natural boundary
// (paragraph, then sentence, then word) found after the next segment's
// start, falling back to a hard cut at size. Pure and deterministic.
func Split(text string, size int, overlap int) ([]Segment, error) {
	if size <= 0 {
		return nil, commonModels.NewConfigurationError("chunk_size", "must be a positive integer")
	}
	if overlap < 0 {
		return nil, commonModels.NewConfigurationError("chunk_overlap", "must not be negative")
	}
	if overlap >= size {
		return nil, commonModels.NewConfigurationError("chunk_overlap", "must be strictly less than chunk_size")
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	stride := size - overlap
	var segments []Segment
	for start, ord := 0, 0; start < len(runes); start, ord = start+stride, ord+1 {
		end := start + size
		if end >= len(runes) {
			segments = append(segments, Segment{Text: string(runes[start:]), Offset: start, Ord: ord})
			break
		}
		// A snapped end must stay past the next segment's start so the
		// segments still cover the whole text.
		if cut := snapToBoundary(runes, start+stride, end); cut > 0 {
			end = cut
		}
		segments = append(segments, Segment{Text: string(runes[start:end]), Offset: start, Ord: ord})
	}
	return segments, nil
}

// separators ordered from best to worst for semantic meaning. Each entry is
// a rune sequence; the cut lands just after it.
var separators = [][]rune{
	{'\n', '\n'},
	{'\n'},
	{'.', ' '},
	{' '},
}

// snapToBoundary returns the largest cut position c with lo < c <= hi such
// that the runes right before c form the best available separator, or 0
// when no separator fits in the window.
func snapToBoundary(runes []rune, lo int, hi int) int {
	for _, sep := range separators {
		for c := hi; c > lo; c-- {
			if c < len(sep) {
				break
			}
			if matchesAt(runes, c-len(sep), sep) {
				return c
			}
		}
	}
	return 0
}

func matchesAt(runes []rune, at int, sep []rune) bool {
	for i, r := range sep {
		if runes[at+i] != r {
			return false
		}
	}
	return true
}
