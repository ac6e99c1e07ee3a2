package service

import (
	"context"
	"fmt"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/domains/tag"
	"conduit-backend/internal/infrastructure/queue"
	"conduit-backend/pkg/cache"
	"conduit-backend/pkg/logger"

	"github.com/google/uuid"
)

type articleServiceImpl struct {
	repository article.Repository
	enqueuer   queue.Enqueuer
	cache      cache.Cache

	// slugMaxLen bounds the persisted identifier; validated against the
	// UUID budget at startup by config.Validate.
	slugMaxLen int
}

func NewArticleService(repo article.Repository, enqueuer queue.Enqueuer, c cache.Cache, slugMaxLen int) article.Service {
	return &articleServiceImpl{
		repository: repo,
		enqueuer:   enqueuer,
		cache:      c,
		slugMaxLen: slugMaxLen,
	}
}

func (s *articleServiceImpl) Create(ctx context.Context, authorID uuid.UUID, req *article.CreateArticleRequest) (*article.ArticleResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("create article: invalid request")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	// The factory assigns the UUID token and derives the slug; this is
	// the only place either is ever computed.
	entity, err := article.NewArticle(
		req.Title,
		req.Description,
		req.Body,
		authorID,
		req.TagList,
		s.slugMaxLen,
	)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	created, err := s.repository.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidatePopularTags(ctx)
	s.notifyFollowers(ctx, created)

	resp := article.ToArticleResponse(created)
	return &resp, nil
}

func (s *articleServiceImpl) GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*article.ArticleResponse, error) {
	a, err := s.repository.GetBySlug(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	resp := article.ToArticleResponse(a)
	return &resp, nil
}

func (s *articleServiceImpl) List(ctx context.Context, filter *article.ArticleFilter, viewerID uuid.UUID) (*article.ArticleListResponse, error) {
	if filter == nil {
		filter = &article.ArticleFilter{}
	}
	filter.Normalize()

	articles, total, err := s.repository.List(ctx, filter, viewerID)
	if err != nil {
		return nil, err
	}

	resp := article.ToArticleListResponse(articles, total)
	return &resp, nil
}

func (s *articleServiceImpl) Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) (*article.ArticleListResponse, error) {
	filter := &article.ArticleFilter{Limit: limit, Offset: offset}
	filter.Normalize()

	articles, total, err := s.repository.Feed(ctx, viewerID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}

	resp := article.ToArticleListResponse(articles, total)
	return &resp, nil
}

func (s *articleServiceImpl) Update(ctx context.Context, slug string, authorID uuid.UUID, req *article.UpdateArticleRequest) (*article.ArticleResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("update article: invalid request")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	a, err := s.repository.GetBySlug(ctx, slug, authorID)
	if err != nil {
		return nil, err
	}

	if a.AuthorID != authorID {
		return nil, article.ErrNotArticleAuthor
	}

	// Entity-level Update edits content only; the slug keeps its
	// original value no matter how the title changed.
	if err := a.Update(req.Title, req.Description, req.Body, req.TagList); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	updated, err := s.repository.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	s.invalidatePopularTags(ctx)

	resp := article.ToArticleResponse(updated)
	return &resp, nil
}

func (s *articleServiceImpl) Delete(ctx context.Context, slug string, authorID uuid.UUID) error {
	a, err := s.repository.GetBySlug(ctx, slug, authorID)
	if err != nil {
		return err
	}

	if a.AuthorID != authorID {
		return article.ErrNotArticleAuthor
	}

	if err := s.repository.Delete(ctx, a.ID); err != nil {
		return err
	}

	s.invalidatePopularTags(ctx)
	return nil
}

func (s *articleServiceImpl) Favorite(ctx context.Context, slug string, userID uuid.UUID) (*article.ArticleResponse, error) {
	a, err := s.repository.GetBySlug(ctx, slug, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Favorite(ctx, a.ID, userID); err != nil {
		return nil, err
	}

	// Re-read for fresh count and flag.
	return s.GetBySlug(ctx, slug, userID)
}

func (s *articleServiceImpl) Unfavorite(ctx context.Context, slug string, userID uuid.UUID) (*article.ArticleResponse, error) {
	a, err := s.repository.GetBySlug(ctx, slug, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Unfavorite(ctx, a.ID, userID); err != nil {
		return nil, err
	}

	return s.GetBySlug(ctx, slug, userID)
}

// ========================================
// HELPERS
// ========================================

// notifyFollowers enqueues the follower notification. Best effort: a
// queue outage must not fail the publish request.
func (s *articleServiceImpl) notifyFollowers(ctx context.Context, a *article.Article) {
	if s.enqueuer == nil {
		return
	}

	payload := queue.ArticleNotifyPayload{
		ArticleID: a.ID,
		Slug:      a.Slug,
		Title:     a.Title,
		AuthorID:  a.AuthorID,
	}
	if a.AuthorUsername != nil {
		payload.AuthorUsername = *a.AuthorUsername
	}

	if err := s.enqueuer.EnqueueArticleNotify(ctx, payload); err != nil {
		logger.Error("notifyFollowers: enqueue failed", err)
	}
}

func (s *articleServiceImpl) invalidatePopularTags(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, tag.PopularTagsCacheKey); err != nil {
		logger.Error("invalidatePopularTags: cache delete failed", err)
	}
}
