package comment

import (
	"context"

	"github.com/google/uuid"
)

// Service addresses comments through their article's slug, matching
// the URL layout (/articles/:slug/comments).
type Service interface {
	Create(ctx context.Context, slug string, authorID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error)
	ListByArticle(ctx context.Context, slug string) (*CommentListResponse, error)

	// Delete removes a comment; only its author may do so.
	Delete(ctx context.Context, slug string, commentID, userID uuid.UUID) error
}
