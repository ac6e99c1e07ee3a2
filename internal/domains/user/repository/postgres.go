package repository

import (
	"context"
	"errors"
	"fmt"

	"conduit-backend/internal/domains/user"
	"conduit-backend/pkg/database"
	"conduit-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the user repository.
//
// Expected schema:
//
//	users    (id, email UNIQUE, username UNIQUE, password_hash,
//	          created_at, updated_at)
//	profiles (user_id PK/FK, bio, image)
//	follows  (follower_id, followee_id, created_at,
//	          PRIMARY KEY (follower_id, followee_id))
func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

const userColumns = `
	u.id, u.email, u.username, u.password_hash,
	p.bio, p.image,
	u.created_at, u.updated_at
`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Bio,
		&u.Image,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts the user and its empty profile in one transaction, so a
// user without a profile can never be observed.
func (r *postgresRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const insertUser = `
			INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, insertUser,
			u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		); err != nil {
			return err
		}

		const insertProfile = `
			INSERT INTO profiles (user_id, bio, image)
			VALUES ($1, $2, $3)
		`
		_, err := tx.Exec(ctx, insertProfile, u.ID, u.Bio, u.Image)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "users_email_key":
				logger.Error("Create: duplicate email", err)
				return nil, user.ErrEmailAlreadyExists
			case "users_username_key":
				logger.Error("Create: duplicate username", err)
				return nil, user.ErrUsernameAlreadyExists
			}
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		WHERE u.email = $1
	`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string, viewerID uuid.UUID) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `,
			EXISTS (
				SELECT 1 FROM follows f
				WHERE f.follower_id = $2 AND f.followee_id = u.id
			) AS following
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		WHERE u.username = $1
	`

	u := &user.User{}
	var following bool
	err := r.pool.QueryRow(ctx, query, username, viewerID).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Bio,
		&u.Image,
		&u.CreatedAt,
		&u.UpdatedAt,
		&following,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	u.Following = &following
	return u, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const updateUser = `
			UPDATE users
			SET email = $2, username = $3, password_hash = $4, updated_at = $5
			WHERE id = $1
		`
		tag, err := tx.Exec(ctx, updateUser,
			u.ID, u.Email, u.Username, u.PasswordHash, u.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return user.ErrUserNotFound
		}

		const updateProfile = `
			UPDATE profiles
			SET bio = $2, image = $3
			WHERE user_id = $1
		`
		_, err = tx.Exec(ctx, updateProfile, u.ID, u.Bio, u.Image)
		return err
	})

	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return nil, user.ErrEmailAlreadyExists
			case "users_username_key":
				return nil, user.ErrUsernameAlreadyExists
			}
		}
		logger.Error("Update: database error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	const query = `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := r.pool.Exec(ctx, query, followerID, followeeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "follows_pkey":
				return user.ErrAlreadyFollowing
			case "follows_followee_id_fkey":
				return user.ErrUserNotFound
			}
		}
		return fmt.Errorf("failed to follow: %w", err)
	}

	return nil
}

func (r *postgresRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	const query = `
		DELETE FROM follows
		WHERE follower_id = $1 AND followee_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFollowing
	}

	return nil
}

func (r *postgresRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND followee_id = $2
		)
	`

	var following bool
	if err := r.pool.QueryRow(ctx, query, followerID, followeeID).Scan(&following); err != nil {
		return false, fmt.Errorf("failed to check following: %w", err)
	}

	return following, nil
}

func (r *postgresRepository) ListFollowerEmails(ctx context.Context, authorID uuid.UUID) ([]string, error) {
	const query = `
		SELECT u.email
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY u.email
	`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list follower emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan follower email: %w", err)
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}
