package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names. The "<domain>:<action>" convention keeps the asynq
// dashboard readable.
const (
	TypeArticleNotify     = "article:notify"
	TypeTagRefreshPopular = "tag:refresh_popular"
)

// ArticleNotifyPayload is carried by article:notify tasks, enqueued when
// an author publishes a new article so followers can be notified.
type ArticleNotifyPayload struct {
	ArticleID      uuid.UUID `json:"article_id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
}

// NewArticleNotifyTask builds the asynq task for a new article.
func NewArticleNotifyTask(payload ArticleNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal article notify payload: %w", err)
	}

	return asynq.NewTask(TypeArticleNotify, data, asynq.MaxRetry(3)), nil
}

// NewTagRefreshPopularTask builds the scheduled popular-tags refresh
// task. It carries no payload.
func NewTagRefreshPopularTask() *asynq.Task {
	return asynq.NewTask(TypeTagRefreshPopular, nil)
}
