package service

import (
	"context"
	"time"

	"conduit-backend/internal/domains/tag"
	"conduit-backend/pkg/cache"
	"conduit-backend/pkg/logger"
)

const (
	popularTagsLimit = 20

	// Belt-and-braces TTL: the scheduled refresh rewrites the entry
	// well before this expires, so a stale entry only survives if the
	// worker is down.
	popularTagsTTL = time.Hour
)

type tagServiceImpl struct {
	repository tag.Repository
	cache      cache.Cache
}

func NewTagService(repo tag.Repository, c cache.Cache) tag.Service {
	return &tagServiceImpl{
		repository: repo,
		cache:      c,
	}
}

func (s *tagServiceImpl) List(ctx context.Context) (*tag.TagListResponse, error) {
	tags, err := s.repository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}

	return &tag.TagListResponse{Tags: tags}, nil
}

// Popular serves the cached aggregation when present and falls back to
// the database on a miss, repopulating the cache on the way out.
func (s *tagServiceImpl) Popular(ctx context.Context) (*tag.PopularTagsResponse, error) {
	if s.cache != nil {
		var cached []tag.PopularTag
		found, err := s.cache.Get(ctx, tag.PopularTagsCacheKey, &cached)
		if err != nil {
			logger.Error("Popular: cache read failed", err)
		}
		if found {
			return &tag.PopularTagsResponse{Tags: cached}, nil
		}
	}

	tags, err := s.computeAndCache(ctx)
	if err != nil {
		return nil, err
	}

	return &tag.PopularTagsResponse{Tags: tags}, nil
}

func (s *tagServiceImpl) RefreshPopular(ctx context.Context) error {
	tags, err := s.computeAndCache(ctx)
	if err != nil {
		return err
	}

	logger.Info("popular tags refreshed", map[string]interface{}{
		"count": len(tags),
	})

	return nil
}

func (s *tagServiceImpl) computeAndCache(ctx context.Context) ([]tag.PopularTag, error) {
	tags, err := s.repository.ListPopular(ctx, popularTagsLimit)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []tag.PopularTag{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tag.PopularTagsCacheKey, tags, popularTagsTTL); err != nil {
			logger.Error("computeAndCache: cache write failed", err)
		}
	}

	return tags, nil
}
