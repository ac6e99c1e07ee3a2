package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the user business logic contract.
type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)

	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *UpdateSettingsRequest) (*UserDTO, error)

	// GetProfile returns the public profile; viewerID may be uuid.Nil
	// for anonymous requests.
	GetProfile(ctx context.Context, username string, viewerID uuid.UUID) (*ProfileDTO, error)
	Follow(ctx context.Context, viewerID uuid.UUID, username string) (*ProfileDTO, error)
	Unfollow(ctx context.Context, viewerID uuid.UUID, username string) (*ProfileDTO, error)
}
