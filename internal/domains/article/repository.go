package article

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the article data access contract. Every read takes a
// viewerID (uuid.Nil for anonymous) so the Favorited flag can be
// populated per viewer.
type Repository interface {
	Create(ctx context.Context, a *Article) (*Article, error)

	GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*Article, error)

	// List returns the global feed, newest first, with the filter
	// applied, plus the total match count for pagination.
	List(ctx context.Context, filter *ArticleFilter, viewerID uuid.UUID) ([]*Article, int, error)

	// Feed returns articles authored by users the viewer follows,
	// newest first.
	Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]*Article, int, error)

	// Update persists content edits. The slug column is never part of
	// the UPDATE statement.
	Update(ctx context.Context, a *Article) (*Article, error)

	Delete(ctx context.Context, id uuid.UUID) error

	Favorite(ctx context.Context, articleID, userID uuid.UUID) error
	Unfavorite(ctx context.Context, articleID, userID uuid.UUID) error
}
