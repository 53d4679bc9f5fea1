package httpadapter

import (
	"net/http"

	"ragserve/internal/core/domain"
)

// mapErrorToHTTPStatus translates typed core failures to transport status.
// Upstream provider failures become 503 so clients can distinguish them from
// bugs; "no grounding found" is not an error and never reaches this path.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrTemporary),
		domain.IsKind(err, domain.ErrEmbedding),
		domain.IsKind(err, domain.ErrGeneration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
