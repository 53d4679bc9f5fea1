package memindex

import (
	"context"
	"fmt"
	"math"
	"sort"

	"ragserve/internal/core/domain"
)

// Index is an in-memory flat vector index over one document's chunks.
// Build constructs it in full; afterwards it is read-only, so concurrent
// searches need no locking. Vectors are L2-normalized at build time and
// ranked by cosine similarity (dot product of unit vectors).
type Index struct {
	chunks    []domain.Chunk
	vectors   [][]float32
	dimension int
}

// Build validates and normalizes the (chunk, vector) pairs and returns a
// complete index. Callers must not hand the index to readers before Build
// returns: a partially built index is never observable.
func Build(chunks []domain.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, domain.WrapError(domain.ErrDimensionMismatch, "build index",
			fmt.Errorf("%d chunks but %d vectors", len(chunks), len(vectors)))
	}

	idx := &Index{
		chunks:  make([]domain.Chunk, len(chunks)),
		vectors: make([][]float32, len(vectors)),
	}
	copy(idx.chunks, chunks)

	for i, vec := range vectors {
		if len(vec) == 0 {
			return nil, domain.WrapError(domain.ErrDimensionMismatch, "build index",
				fmt.Errorf("vector %d is empty", i))
		}
		if i == 0 {
			idx.dimension = len(vec)
		} else if len(vec) != idx.dimension {
			return nil, domain.WrapError(domain.ErrDimensionMismatch, "build index",
				fmt.Errorf("vector %d has dimension %d, index has %d", i, len(vec), idx.dimension))
		}
		idx.vectors[i] = normalize(vec)
	}
	return idx, nil
}

func (idx *Index) Size() int {
	return len(idx.chunks)
}

func (idx *Index) Dimension() int {
	return idx.dimension
}

// Search returns up to limit chunks ranked by descending cosine similarity.
// Ties keep insertion order. limit <= 0 and an empty index both yield an
// empty result; limit beyond the index size returns everything fully ranked.
func (idx *Index) Search(_ context.Context, queryVector []float32, limit int) ([]domain.RetrievedChunk, error) {
	if limit <= 0 || len(idx.chunks) == 0 {
		return nil, nil
	}
	if len(queryVector) != idx.dimension {
		return nil, domain.WrapError(domain.ErrDimensionMismatch, "search index",
			fmt.Errorf("query has dimension %d, index has %d", len(queryVector), idx.dimension))
	}

	query := normalize(queryVector)
	hits := make([]domain.RetrievedChunk, 0, len(idx.chunks))
	for i, vec := range idx.vectors {
		hits = append(hits, domain.RetrievedChunk{
			Chunk: idx.chunks[i],
			Score: dot(query, vec),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if limit < len(hits) {
		hits = hits[:limit]
	}
	return hits, nil
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	out := make([]float32, len(vec))
	if sum == 0 {
		copy(out, vec)
		return out
	}
	inv := 1.0 / math.Sqrt(sum)
	for i, v := range vec {
		out[i] = float32(float64(v) * inv)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
