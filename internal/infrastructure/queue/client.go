package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"conduit-backend/pkg/logger"
)

// Enqueuer is the narrow interface services depend on, so tests can
// substitute a fake and the API can run without a queue.
type Enqueuer interface {
	EnqueueArticleNotify(ctx context.Context, payload ArticleNotifyPayload) error
	Close() error
}

// Client wraps asynq.Client.
type Client struct {
	client *asynq.Client
}

var _ Enqueuer = (*Client)(nil)

// NewClient creates the task producer used by the API process.
func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (c *Client) EnqueueArticleNotify(ctx context.Context, payload ArticleNotifyPayload) error {
	task, err := NewArticleNotifyTask(payload)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeArticleNotify, err)
	}

	logger.Info("task enqueued", map[string]interface{}{
		"type":    TypeArticleNotify,
		"task_id": info.ID,
		"queue":   info.Queue,
	})

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
