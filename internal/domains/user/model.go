package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the account entity. The profile fields (Bio, Image) live in a
// separate one-to-one table but are loaded together with the user; a
// profile row is created in the same transaction as the user, so every
// user always has one.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string

	// Profile (one-to-one, created with the user)
	Bio   string
	Image string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Runtime metadata, populated per viewer by the repository.
	Following *bool
}

// NewUser creates a user with an empty profile. The password must
// already be hashed; hashing policy belongs to the service layer.
func NewUser(email, username, passwordHash string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if len(username) > 255 {
		return nil, fmt.Errorf("username must not exceed 255 characters (got %d)", len(username))
	}
	if passwordHash == "" {
		return nil, errors.New("password hash cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Bio:          "",
		Image:        "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UpdateSettings applies the mutable account and profile fields. Empty
// strings mean "keep current value" for email and username; bio and
// image are overwritten as given (clearing them is legitimate).
func (u *User) UpdateSettings(email, username, bio, image string) error {
	if email != "" {
		u.Email = strings.TrimSpace(strings.ToLower(email))
	}
	if username != "" {
		username = strings.TrimSpace(username)
		if len(username) > 255 {
			return fmt.Errorf("username must not exceed 255 characters (got %d)", len(username))
		}
		u.Username = username
	}

	if len(bio) > 1000 {
		return fmt.Errorf("bio must not exceed 1000 characters (got %d)", len(bio))
	}

	u.Bio = bio
	u.Image = image
	u.UpdatedAt = time.Now()

	return nil
}

// SetPasswordHash replaces the stored hash.
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
}
