package comment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, entity *Comment) (*Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// ListByArticle returns the article's comments, newest first.
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*Comment, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
