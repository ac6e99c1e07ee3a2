package repository

import (
	"context"
	"errors"
	"fmt"

	"conduit-backend/internal/domains/comment"
	"conduit-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the comment repository.
//
// Expected schema:
//
//	comments (id, article_id FK ON DELETE CASCADE, author_id FK,
//	          body, created_at, updated_at)
func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

const commentSelect = `
	SELECT
		c.id, c.article_id, c.author_id, c.body, c.created_at, c.updated_at,
		u.username, p.bio, p.image
	FROM comments c
	JOIN users u ON u.id = c.author_id
	JOIN profiles p ON p.user_id = u.id
`

func scanComment(row pgx.Row) (*comment.Comment, error) {
	cm := &comment.Comment{}
	var username, bio, image string

	err := row.Scan(
		&cm.ID,
		&cm.ArticleID,
		&cm.AuthorID,
		&cm.Body,
		&cm.CreatedAt,
		&cm.UpdatedAt,
		&username,
		&bio,
		&image,
	)
	if err != nil {
		return nil, err
	}

	cm.AuthorUsername = &username
	cm.AuthorBio = &bio
	cm.AuthorImage = &image

	return cm, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *comment.Comment) (*comment.Comment, error) {
	const query = `
		INSERT INTO comments (id, article_id, author_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.ArticleID,
		entity.AuthorID,
		entity.Body,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return r.GetByID(ctx, entity.ID)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`

	cm, err := scanComment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return cm, nil
}

func (r *postgresRepository) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*comment.Comment, error) {
	query := commentSelect + `
		WHERE c.article_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*comment.Comment
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, cm)
	}

	return comments, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM comments WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}
