package tag

import "context"

// Repository reads tags out of the articles table. Tags have no table
// of their own: they live in articles.tag_list and are aggregated on
// demand.
type Repository interface {
	// ListAll returns every distinct tag in use, alphabetically.
	ListAll(ctx context.Context) ([]string, error)

	// ListPopular returns the most used tags with their article
	// counts, most used first.
	ListPopular(ctx context.Context, limit int) ([]PopularTag, error)
}
