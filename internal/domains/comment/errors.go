package comment

import (
	"errors"
	"net/http"

	"conduit-backend/internal/domains/article"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the comment author can delete it")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes. Comments
// are addressed through their article's slug, so an unknown article
// surfaces here as well.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCommentNotFound),
		errors.Is(err, article.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotCommentAuthor):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
