package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ragserve/internal/core/domain"
	"ragserve/internal/core/ports"
)

const defaultTopK = 3

// QueryUseCase answers one question grounded in retrieved chunks. It never
// retries upstream calls (that policy lives in the provider adapters) and it
// never calls the generator with empty context: no grounding means
// Answer.Found=false, not a fabricated reply.
type QueryUseCase struct {
	embedder  ports.Embedder
	searcher  ports.VectorSearcher
	generator ports.AnswerGenerator
	topK      int
}

func NewQueryUseCase(
	embedder ports.Embedder,
	searcher ports.VectorSearcher,
	generator ports.AnswerGenerator,
	topK int,
) *QueryUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &QueryUseCase{
		embedder:  embedder,
		searcher:  searcher,
		generator: generator,
		topK:      topK,
	}
}

func (uc *QueryUseCase) Answer(ctx context.Context, question string, limit int) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "answer", errors.New("question is empty"))
	}
	if limit <= 0 {
		limit = uc.topK
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := uc.searcher.Search(ctx, queryVector, limit)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(hits) == 0 {
		return &domain.Answer{
			Found:   false,
			Sources: []domain.RetrievedChunk{},
		}, nil
	}

	text, grounded, err := uc.generator.GenerateAnswer(ctx, question, hits)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:    text,
		Found:   grounded,
		Sources: hits,
	}, nil
}
