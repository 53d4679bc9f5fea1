package ports

import (
	"context"

	"ragserve/internal/core/domain"
)

// QuestionAnswerer is the inbound contract for grounded question answering.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string, limit int) (*domain.Answer, error)
}
