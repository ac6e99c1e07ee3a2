package comment

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"conduit-backend/internal/domains/article"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatusCode(ErrCommentNotFound))
	assert.Equal(t, http.StatusForbidden, GetHTTPStatusCode(ErrNotCommentAuthor))

	// Resolving the slug goes through the article repository, so its
	// not-found error reaches comment handlers and must stay a 404.
	assert.Equal(t, http.StatusNotFound, GetHTTPStatusCode(article.ErrArticleNotFound))
	assert.Equal(t, http.StatusNotFound,
		GetHTTPStatusCode(fmt.Errorf("list comments: %w", article.ErrArticleNotFound)))

	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatusCode(errors.New("connection reset")))
}
