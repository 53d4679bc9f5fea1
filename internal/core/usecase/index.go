package usecase

import (
	"context"
	"fmt"

	"ragserve/internal/core/domain"
	"ragserve/internal/core/ports"
)

// IndexDocumentUseCase runs the build phase: chunk the document, embed every
// chunk, and hand the pairs to the index builder. It runs once at startup,
// single-threaded, and the index becomes visible only after Build returns.
type IndexDocumentUseCase struct {
	chunker  ports.Chunker
	embedder ports.Embedder
	builder  ports.IndexBuilder
}

func NewIndexDocumentUseCase(
	chunker ports.Chunker,
	embedder ports.Embedder,
	builder ports.IndexBuilder,
) *IndexDocumentUseCase {
	return &IndexDocumentUseCase{
		chunker:  chunker,
		embedder: embedder,
		builder:  builder,
	}
}

func (uc *IndexDocumentUseCase) Build(ctx context.Context, doc *domain.Document) (ports.VectorSearcher, []domain.Chunk, error) {
	chunks := uc.chunker.Split(doc.Text)

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("embed chunks: %w", err)
	}

	index, err := uc.builder.Build(chunks, vectors)
	if err != nil {
		return nil, nil, fmt.Errorf("build index: %w", err)
	}
	return index, chunks, nil
}
