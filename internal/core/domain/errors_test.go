package domain

import (
	"errors"
	"testing"
)

func TestWrapErrorKeepsKindAndCause(t *testing.T) {
	cause := errors.New("status 429")
	err := WrapError(ErrEmbedding, "create embeddings", cause)

	if !IsKind(err, ErrEmbedding) {
		t.Fatalf("kind lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	if IsKind(err, ErrGeneration) {
		t.Fatal("unrelated kind must not match")
	}
}

func TestWrapErrorStacksKinds(t *testing.T) {
	inner := WrapError(ErrEmbedding, "create embeddings", errors.New("overloaded"))
	outer := WrapError(ErrTemporary, "create embeddings", inner)

	if !IsKind(outer, ErrTemporary) || !IsKind(outer, ErrEmbedding) {
		t.Fatalf("stacked kinds lost: %v", outer)
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError(ErrEmbedding, "noop", nil); err != nil {
		t.Fatalf("wrapping nil must stay nil, got %v", err)
	}
}
