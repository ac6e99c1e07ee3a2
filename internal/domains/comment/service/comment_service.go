package service

import (
	"context"
	"fmt"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/domains/comment"

	"github.com/google/uuid"
)

type commentServiceImpl struct {
	repository comment.Repository

	// Comments are addressed by article slug; the article repository
	// resolves slugs to IDs.
	articles article.Repository
}

func NewCommentService(repo comment.Repository, articles article.Repository) comment.Service {
	return &commentServiceImpl{
		repository: repo,
		articles:   articles,
	}
}

func (s *commentServiceImpl) Create(ctx context.Context, slug string, authorID uuid.UUID, req *comment.CreateCommentRequest) (*comment.CommentResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("create comment: invalid request")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	a, err := s.articles.GetBySlug(ctx, slug, authorID)
	if err != nil {
		return nil, err
	}

	entity, err := comment.NewComment(a.ID, authorID, req.Body)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	created, err := s.repository.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	resp := comment.ToCommentResponse(created)
	return &resp, nil
}

func (s *commentServiceImpl) ListByArticle(ctx context.Context, slug string) (*comment.CommentListResponse, error) {
	a, err := s.articles.GetBySlug(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, err
	}

	comments, err := s.repository.ListByArticle(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	resp := comment.ToCommentListResponse(comments)
	return &resp, nil
}

func (s *commentServiceImpl) Delete(ctx context.Context, slug string, commentID, userID uuid.UUID) error {
	a, err := s.articles.GetBySlug(ctx, slug, userID)
	if err != nil {
		return err
	}

	cm, err := s.repository.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	// A comment ID under the wrong slug is treated as absent rather
	// than revealing it exists elsewhere.
	if cm.ArticleID != a.ID {
		return comment.ErrCommentNotFound
	}
	if cm.AuthorID != userID {
		return comment.ErrNotCommentAuthor
	}

	return s.repository.Delete(ctx, commentID)
}
