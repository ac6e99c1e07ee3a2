package service

import (
	"context"
	"fmt"
	"time"

	"conduit-backend/internal/domains/user"
	"conduit-backend/pkg/cache"
	"conduit-backend/pkg/jwt"
	"conduit-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Login throttling: after maxLoginAttempts failures within the
	// window, further attempts are rejected until the counter expires.
	maxLoginAttempts   = 5
	loginAttemptWindow = 15 * time.Minute
)

type userServiceImpl struct {
	repository user.Repository
	jwtManager *jwt.Manager
	cache      cache.Cache
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, c cache.Cache) user.Service {
	return &userServiceImpl{
		repository: repo,
		jwtManager: jwtManager,
		cache:      c,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *user.RegisterRequest) (*user.AuthResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("register: invalid request")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: hash password failed", err)
		return nil, fmt.Errorf("register: failed to hash password")
	}

	entity, err := user.NewUser(req.Email, req.Username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repository.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(created)
}

func (s *userServiceImpl) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("login: invalid request")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.checkLoginThrottle(ctx, req.Email); err != nil {
		return nil, err
	}

	u, err := s.repository.GetByEmail(ctx, req.Email)
	if err != nil {
		// Don't reveal whether the account exists.
		s.recordFailedLogin(ctx, req.Email)
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, req.Email)
		return nil, user.ErrInvalidCredentials
	}

	s.clearFailedLogins(ctx, req.Email)

	return s.issueTokens(u)
}

func (s *userServiceImpl) Refresh(ctx context.Context, refreshToken string) (*user.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *userServiceImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := user.ToUserDTO(u)
	return &dto, nil
}

func (s *userServiceImpl) UpdateSettings(ctx context.Context, userID uuid.UUID, req *user.UpdateSettingsRequest) (*user.UserDTO, error) {
	if req == nil {
		return nil, fmt.Errorf("update settings: invalid request")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	u, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.UpdateSettings(req.Email, req.Username, req.Bio, req.Image); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("UpdateSettings: hash password failed", err)
			return nil, fmt.Errorf("update settings: failed to hash password")
		}
		u.SetPasswordHash(string(hash))
	}

	updated, err := s.repository.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	dto := user.ToUserDTO(updated)
	return &dto, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, username string, viewerID uuid.UUID) (*user.ProfileDTO, error) {
	u, err := s.repository.GetByUsername(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}

	dto := user.ToProfileDTO(u)
	return &dto, nil
}

func (s *userServiceImpl) Follow(ctx context.Context, viewerID uuid.UUID, username string) (*user.ProfileDTO, error) {
	target, err := s.repository.GetByUsername(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}

	if target.ID == viewerID {
		return nil, user.ErrCannotFollowSelf
	}

	if err := s.repository.Follow(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}

	dto := user.ToProfileDTO(target)
	dto.Following = true
	return &dto, nil
}

func (s *userServiceImpl) Unfollow(ctx context.Context, viewerID uuid.UUID, username string) (*user.ProfileDTO, error) {
	target, err := s.repository.GetByUsername(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Unfollow(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}

	dto := user.ToProfileDTO(target)
	dto.Following = false
	return &dto, nil
}

// ========================================
// HELPERS
// ========================================

func (s *userServiceImpl) issueTokens(u *user.User) (*user.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Username)
	if err != nil {
		logger.Error("issueTokens: access token", err)
		return nil, fmt.Errorf("failed to generate access token")
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		logger.Error("issueTokens: refresh token", err)
		return nil, fmt.Errorf("failed to generate refresh token")
	}

	return &user.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessExpiry()),
		User:         user.ToUserDTO(u),
	}, nil
}

func loginAttemptsKey(email string) string {
	return "login:failed:" + email
}

func (s *userServiceImpl) checkLoginThrottle(ctx context.Context, email string) error {
	if s.cache == nil {
		return nil
	}

	var attempts int64
	found, err := s.cache.Get(ctx, loginAttemptsKey(email), &attempts)
	if err != nil {
		// Cache trouble never blocks logins.
		logger.Error("checkLoginThrottle: cache get failed", err)
		return nil
	}

	if found && attempts >= maxLoginAttempts {
		return user.ErrTooManyAttempts
	}

	return nil
}

func (s *userServiceImpl) recordFailedLogin(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}

	key := loginAttemptsKey(email)
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Error("recordFailedLogin: increment failed", err)
		return
	}

	// Start the window on the first failure.
	if count == 1 {
		if err := s.cache.Expire(ctx, key, loginAttemptWindow); err != nil {
			logger.Error("recordFailedLogin: expire failed", err)
		}
	}
}

func (s *userServiceImpl) clearFailedLogins(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, loginAttemptsKey(email)); err != nil {
		logger.Error("clearFailedLogins: delete failed", err)
	}
}
