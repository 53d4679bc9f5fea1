package loader

import (
	"fmt"
	"os"
	"unicode/utf8"

	"ragserve/internal/core/domain"
)

// Load reads the single plain-text source document. Only UTF-8 text is in
// scope; anything else is rejected up front rather than embedded as noise.
func Load(path string) (*domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source document: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "load document",
			fmt.Errorf("%s is not valid UTF-8 text", path))
	}

	return &domain.Document{
		Path: path,
		Text: string(raw),
	}, nil
}
