package article

import (
	"errors"
	"net/http"
)

// Repository-level errors
var (
	ErrArticleNotFound = errors.New("article not found")

	// ErrDuplicateSlug should be structurally impossible: the slug ends
	// in a per-record UUID token. The unique index is the safety net,
	// and a violation means something upstream is broken.
	ErrDuplicateSlug = errors.New("article slug already exists")
)

// Service-level errors
var (
	ErrNotArticleAuthor = errors.New("only the author can modify this article")
)

// GetHTTPStatusCode maps domain errors onto HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, ErrNotArticleAuthor):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
