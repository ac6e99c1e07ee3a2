package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user data access contract.
type Repository interface {
	// Create inserts the user and its profile row in one transaction.
	Create(ctx context.Context, u *User) (*User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername loads a user; when viewerID != uuid.Nil the
	// Following flag is populated for that viewer.
	GetByUsername(ctx context.Context, username string, viewerID uuid.UUID) (*User, error)

	// Update persists account and profile fields together.
	Update(ctx context.Context, u *User) (*User, error)

	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// ListFollowerEmails returns the email addresses of everyone
	// following the given author; used by the notification worker.
	ListFollowerEmails(ctx context.Context, authorID uuid.UUID) ([]string, error)
}
