package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbedding marks a failed upstream embedding call.
	ErrEmbedding = errors.New("embedding failure")
	// ErrGeneration marks a failed upstream generation call.
	ErrGeneration = errors.New("generation failure")
	// ErrDimensionMismatch marks vectors whose count or dimensionality does
	// not match the index.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
