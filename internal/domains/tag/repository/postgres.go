package repository

import (
	"context"
	"fmt"

	"conduit-backend/internal/domains/tag"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]string, error) {
	const query = `
		SELECT DISTINCT unnest(tag_list) AS tag
		FROM articles
		ORDER BY tag
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (r *postgresRepository) ListPopular(ctx context.Context, limit int) ([]tag.PopularTag, error) {
	const query = `
		SELECT tag, COUNT(*)::int AS article_count
		FROM articles, unnest(tag_list) AS tag
		GROUP BY tag
		ORDER BY article_count DESC, tag
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular tags: %w", err)
	}
	defer rows.Close()

	var tags []tag.PopularTag
	for rows.Next() {
		var t tag.PopularTag
		if err := rows.Scan(&t.Name, &t.ArticleCount); err != nil {
			return nil, fmt.Errorf("failed to scan popular tag: %w", err)
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}
