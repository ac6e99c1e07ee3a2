package tag

import "context"

// PopularTagsCacheKey is the Redis key holding the precomputed popular
// tags. Writers of articles invalidate it; the worker refreshes it on
// a schedule.
const PopularTagsCacheKey = "tags:popular"

type Service interface {
	List(ctx context.Context) (*TagListResponse, error)
	Popular(ctx context.Context) (*PopularTagsResponse, error)

	// RefreshPopular recomputes the popular tags and rewrites the
	// cache entry. Called by the scheduled worker task.
	RefreshPopular(ctx context.Context) error
}
