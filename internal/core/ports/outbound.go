package ports

import (
	"context"

	"ragserve/internal/core/domain"
)

// Chunker splits document text into retrieval units.
type Chunker interface {
	Split(text string) []domain.Chunk
}

// Embedder builds vectors for chunks and query text. Chunk and query vectors
// must come from the same model, or index searches will reject the query.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher performs nearest-neighbor search over the built index.
type VectorSearcher interface {
	Search(ctx context.Context, queryVector []float32, limit int) ([]domain.RetrievedChunk, error)
}

// IndexBuilder materializes a complete, read-only index from matched
// (chunk, vector) pairs. The returned searcher must never be visible to
// readers before Build succeeds.
type IndexBuilder interface {
	Build(chunks []domain.Chunk, vectors [][]float32) (VectorSearcher, error)
}

// AnswerGenerator creates the final user-facing answer from retrieved
// context. ok is false when the model signalled that the context does not
// contain the answer.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question string, chunks []domain.RetrievedChunk) (text string, ok bool, err error)
}
