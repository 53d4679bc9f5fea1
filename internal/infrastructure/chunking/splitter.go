package chunking

import (
	"unicode"

	"ragserve/internal/core/domain"
)

const defaultChunkSize = 200

// Splitter cuts document text into chunks of at most ChunkSize runes,
// preferring sentence and paragraph boundaries over hard cuts. Splitting is
// deterministic: the same text and configuration always produce the same
// chunk sequence, and consecutive chunk spans cover the text with no gaps.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

func (s *Splitter) Split(text string) []domain.Chunk {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, n/s.ChunkSize+1)
	start := 0
	for start < n {
		end := start + s.ChunkSize
		if end >= n {
			end = n
		} else if cut := lastSentenceEnd(runes, start, end); cut > start {
			end = cut
		}

		chunks = append(chunks, domain.Chunk{
			Text:  string(runes[start:end]),
			Start: start,
			End:   end,
			Index: len(chunks),
		})
		if end == n {
			break
		}

		next := end - s.Overlap
		if next <= start {
			// Overlap would stall on a short boundary-cut chunk.
			next = end
		}
		start = next
	}
	return chunks
}

// lastSentenceEnd returns the rune offset just past the last sentence or
// paragraph boundary in (start, end], or start when no boundary exists
// within the window and a hard cut is the only option.
func lastSentenceEnd(runes []rune, start, end int) int {
	for i := end - 1; i > start; i-- {
		switch runes[i] {
		case '\n':
			return i + 1
		case '.', '!', '?':
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				return i + 1
			}
		}
	}
	return start
}
