package main

import (
	"context"
	"encoding/json"
	"fmt"

	"conduit-backend/internal/domains/tag"
	"conduit-backend/internal/domains/user"
	"conduit-backend/internal/infrastructure/queue"
	"conduit-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// TaskHandlers groups the worker's task processors and their
// dependencies.
type TaskHandlers struct {
	users user.Repository
	tags  tag.Service
}

func NewTaskHandlers(users user.Repository, tags tag.Service) *TaskHandlers {
	return &TaskHandlers{users: users, tags: tags}
}

// HandleArticleNotify fans a new article out to the author's followers.
// Delivery is a log line for now; the lookup and retry semantics are
// the part that matters.
func (h *TaskHandlers) HandleArticleNotify(ctx context.Context, t *asynq.Task) error {
	var payload queue.ArticleNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never become valid; don't retry.
		return fmt.Errorf("unmarshal %s payload: %v: %w", queue.TypeArticleNotify, err, asynq.SkipRetry)
	}

	emails, err := h.users.ListFollowerEmails(ctx, payload.AuthorID)
	if err != nil {
		return fmt.Errorf("list followers of %s: %w", payload.AuthorID, err)
	}

	for _, email := range emails {
		logger.Info("notifying follower of new article", map[string]interface{}{
			"email":  email,
			"author": payload.AuthorUsername,
			"slug":   payload.Slug,
			"title":  payload.Title,
		})
	}

	logger.Info("article notification processed", map[string]interface{}{
		"slug":      payload.Slug,
		"followers": len(emails),
	})

	return nil
}

// HandleTagRefreshPopular recomputes the popular-tags cache entry.
func (h *TaskHandlers) HandleTagRefreshPopular(ctx context.Context, _ *asynq.Task) error {
	if err := h.tags.RefreshPopular(ctx); err != nil {
		return fmt.Errorf("refresh popular tags: %w", err)
	}
	return nil
}
