package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"conduit-backend/internal/domains/article"
	"conduit-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the article repository.
//
// Expected schema:
//
//	articles  (id, slug UNIQUE, uuid_token UNIQUE, title, description,
//	           body, author_id FK, tag_list text[], created_at, updated_at)
//	favorites (user_id, article_id, created_at,
//	           PRIMARY KEY (user_id, article_id))
func NewPostgresRepository(pool *pgxpool.Pool) article.Repository {
	return &postgresRepository{pool: pool}
}

// articleSelect joins author profile and aggregates the per-viewer
// favorite flags. $1 is always the viewer ID (uuid.Nil for anonymous).
const articleSelect = `
	SELECT
		a.id, a.slug, a.uuid_token, a.title, a.description, a.body,
		a.author_id, a.tag_list, a.created_at, a.updated_at,
		u.username, p.bio, p.image,
		(SELECT COUNT(*) FROM favorites f WHERE f.article_id = a.id)::int AS favorites_count,
		EXISTS (
			SELECT 1 FROM favorites f
			WHERE f.article_id = a.id AND f.user_id = $1
		) AS favorited
	FROM articles a
	JOIN users u ON u.id = a.author_id
	JOIN profiles p ON p.user_id = u.id
`

func scanArticle(row pgx.Row) (*article.Article, error) {
	a := &article.Article{}
	var (
		username, bio, image string
		favoritesCount       int
		favorited            bool
	)

	err := row.Scan(
		&a.ID,
		&a.Slug,
		&a.UUIDToken,
		&a.Title,
		&a.Description,
		&a.Body,
		&a.AuthorID,
		&a.TagList,
		&a.CreatedAt,
		&a.UpdatedAt,
		&username,
		&bio,
		&image,
		&favoritesCount,
		&favorited,
	)
	if err != nil {
		return nil, err
	}

	a.AuthorUsername = &username
	a.AuthorBio = &bio
	a.AuthorImage = &image
	a.FavoritesCount = &favoritesCount
	a.Favorited = &favorited

	return a, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *article.Article) (*article.Article, error) {
	const query = `
		INSERT INTO articles (
			id, slug, uuid_token, title, description, body,
			author_id, tag_list, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.Slug,
		entity.UUIDToken,
		entity.Title,
		entity.Description,
		entity.Body,
		entity.AuthorID,
		entity.TagList,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.ConstraintName == "articles_slug_key" {
				// Should be unreachable: the slug carries a fresh UUID.
				logger.Error("Create: duplicate slug", err)
				return nil, article.ErrDuplicateSlug
			}
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return r.GetBySlug(ctx, entity.Slug, entity.AuthorID)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*article.Article, error) {
	query := articleSelect + ` WHERE a.slug = $2`

	a, err := scanArticle(r.pool.QueryRow(ctx, query, viewerID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, article.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *article.ArticleFilter, viewerID uuid.UUID) ([]*article.Article, int, error) {
	var (
		conditions []string
		args       = []interface{}{viewerID}
	)

	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(a.tag_list)", len(args)))
	}
	if filter.Author != "" {
		args = append(args, filter.Author)
		conditions = append(conditions, fmt.Sprintf("u.username = $%d", len(args)))
	}
	if filter.FavoritedBy != "" {
		args = append(args, filter.FavoritedBy)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM favorites ff
			JOIN users fu ON fu.id = ff.user_id
			WHERE ff.article_id = a.id AND fu.username = $%d
		)`, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Total count for pagination, same filter without limit/offset.
	countQuery := `
		SELECT COUNT(*)
		FROM articles a
		JOIN users u ON u.id = a.author_id
		JOIN profiles p ON p.user_id = u.id
	` + where

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := articleSelect + where + fmt.Sprintf(`
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *postgresRepository) Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]*article.Article, int, error) {
	const followedCondition = `
		a.author_id IN (
			SELECT followee_id FROM follows WHERE follower_id = $1
		)
	`

	var total int
	countQuery := `SELECT COUNT(*) FROM articles a WHERE ` + followedCondition
	if err := r.pool.QueryRow(ctx, countQuery, viewerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feed: %w", err)
	}

	query := articleSelect + ` WHERE ` + followedCondition + `
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, viewerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	articles, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// Update writes the mutable content fields. The slug and uuid_token
// columns are intentionally absent: the identifier is immutable.
func (r *postgresRepository) Update(ctx context.Context, entity *article.Article) (*article.Article, error) {
	const query = `
		UPDATE articles
		SET title = $2, description = $3, body = $4, tag_list = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.Title,
		entity.Description,
		entity.Body,
		entity.TagList,
		entity.UpdatedAt,
	)
	if err != nil {
		logger.Error("Update: database error", err)
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, article.ErrArticleNotFound
	}

	return r.GetBySlug(ctx, entity.Slug, entity.AuthorID)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM articles WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return article.ErrArticleNotFound
	}

	return nil
}

func (r *postgresRepository) Favorite(ctx context.Context, articleID, userID uuid.UUID) error {
	// ON CONFLICT keeps favoriting idempotent.
	const query = `
		INSERT INTO favorites (user_id, article_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, article_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, userID, articleID); err != nil {
		return fmt.Errorf("failed to favorite article: %w", err)
	}

	return nil
}

func (r *postgresRepository) Unfavorite(ctx context.Context, articleID, userID uuid.UUID) error {
	const query = `
		DELETE FROM favorites
		WHERE user_id = $1 AND article_id = $2
	`

	if _, err := r.pool.Exec(ctx, query, userID, articleID); err != nil {
		return fmt.Errorf("failed to unfavorite article: %w", err)
	}

	return nil
}

func collectArticles(rows pgx.Rows) ([]*article.Article, error) {
	var articles []*article.Article

	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}
