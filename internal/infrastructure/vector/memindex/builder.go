package memindex

import (
	"ragserve/internal/core/domain"
	"ragserve/internal/core/ports"
)

// Builder adapts Build to the ports.IndexBuilder contract.
type Builder struct{}

func (Builder) Build(chunks []domain.Chunk, vectors [][]float32) (ports.VectorSearcher, error) {
	idx, err := Build(chunks, vectors)
	if err != nil {
		return nil, err
	}
	return idx, nil
}
