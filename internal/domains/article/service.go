package article

import (
	"context"

	"github.com/google/uuid"
)

// Service is the article business logic contract.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, req *CreateArticleRequest) (*ArticleResponse, error)
	GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*ArticleResponse, error)
	List(ctx context.Context, filter *ArticleFilter, viewerID uuid.UUID) (*ArticleListResponse, error)
	Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) (*ArticleListResponse, error)
	Update(ctx context.Context, slug string, authorID uuid.UUID, req *UpdateArticleRequest) (*ArticleResponse, error)
	Delete(ctx context.Context, slug string, authorID uuid.UUID) error
	Favorite(ctx context.Context, slug string, userID uuid.UUID) (*ArticleResponse, error)
	Unfavorite(ctx context.Context, slug string, userID uuid.UUID) (*ArticleResponse, error)
}
