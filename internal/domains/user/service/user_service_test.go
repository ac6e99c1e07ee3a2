package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"conduit-backend/internal/domains/user"
	"conduit-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	byID      map[uuid.UUID]*user.User
	follows   map[[2]uuid.UUID]bool
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    make(map[uuid.UUID]*user.User),
		follows: make(map[[2]uuid.UUID]bool),
	}
}

func (f *fakeRepository) Create(_ context.Context, u *user.User) (*user.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, user.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return nil, user.ErrUsernameAlreadyExists
		}
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeRepository) GetByUsername(_ context.Context, username string, viewerID uuid.UUID) (*user.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			following := f.follows[[2]uuid.UUID{viewerID, u.ID}]
			u.Following = &following
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeRepository) Update(_ context.Context, u *user.User) (*user.User, error) {
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeRepository) Follow(_ context.Context, followerID, followeeID uuid.UUID) error {
	key := [2]uuid.UUID{followerID, followeeID}
	if f.follows[key] {
		return user.ErrAlreadyFollowing
	}
	f.follows[key] = true
	return nil
}

func (f *fakeRepository) Unfollow(_ context.Context, followerID, followeeID uuid.UUID) error {
	key := [2]uuid.UUID{followerID, followeeID}
	if !f.follows[key] {
		return user.ErrNotFollowing
	}
	delete(f.follows, key)
	return nil
}

func (f *fakeRepository) IsFollowing(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return f.follows[[2]uuid.UUID{followerID, followeeID}], nil
}

func (f *fakeRepository) ListFollowerEmails(_ context.Context, authorID uuid.UUID) ([]string, error) {
	var emails []string
	for key := range f.follows {
		if key[1] == authorID {
			if follower, ok := f.byID[key[0]]; ok {
				emails = append(emails, follower.Email)
			}
		}
	}
	return emails, nil
}

// memoryCache backs the login throttle in tests.
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) Ping(_ context.Context) error { return nil }

func (m *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	var n int64
	if raw, ok := m.data[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	raw, _ := json.Marshal(n)
	m.data[key] = raw
	return n, nil
}

func (m *memoryCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (m *memoryCache) TTL(_ context.Context, _ string) (time.Duration, error)    { return 0, nil }

func newTestService(repo user.Repository, c *memoryCache) user.Service {
	manager := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	if c == nil {
		return NewUserService(repo, manager, nil)
	}
	return NewUserService(repo, manager, c)
}

func registerTestUser(t *testing.T, svc user.Service, email, username string) *user.AuthResponse {
	t.Helper()

	resp, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:    email,
		Username: username,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_IssuesTokenPair(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)

	resp := registerTestUser(t, svc, "jake@example.com", "jake")

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "jake@example.com", resp.User.Email)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)

	registerTestUser(t, svc, "jake@example.com", "jake")

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:    "jake@example.com",
		Username: "other",
		Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:    "jake@example.com",
		Username: "jake",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestLogin_Succeeds(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	registerTestUser(t, svc, "jake@example.com", "jake")

	resp, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "jake@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "jake", resp.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	registerTestUser(t, svc, "jake@example.com", "jake")

	_, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "jake@example.com",
		Password: "not the password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)

	_, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever works",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_ThrottledAfterRepeatedFailures(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(newFakeRepository(), cache)

	req := &user.LoginRequest{Email: "ghost@example.com", Password: "wrong password"}

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), req)
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	}

	_, err := svc.Login(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrTooManyAttempts)
}

func TestLogin_SuccessClearsThrottleCounter(t *testing.T) {
	cache := newMemoryCache()
	repo := newFakeRepository()
	svc := newTestService(repo, cache)
	registerTestUser(t, svc, "jake@example.com", "jake")

	bad := &user.LoginRequest{Email: "jake@example.com", Password: "wrong password"}
	for i := 0; i < 4; i++ {
		_, err := svc.Login(context.Background(), bad)
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	}

	_, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "jake@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Counter reset: the next failure starts from one again.
	_, err = svc.Login(context.Background(), bad)
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	first := registerTestUser(t, svc, "jake@example.com", "jake")

	resp, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	first := registerTestUser(t, svc, "jake@example.com", "jake")

	_, err := svc.Refresh(context.Background(), first.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestUpdateSettings_ChangesProfileFields(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	registered := registerTestUser(t, svc, "jake@example.com", "jake")

	userID := uuid.MustParse(registered.User.ID)
	updated, err := svc.UpdateSettings(context.Background(), userID, &user.UpdateSettingsRequest{
		Bio:   "I work at statefarm",
		Image: "https://example.com/jake.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "I work at statefarm", updated.Bio)
	assert.Equal(t, "https://example.com/jake.png", updated.Image)
	// Untouched fields survive.
	assert.Equal(t, "jake@example.com", updated.Email)
	assert.Equal(t, "jake", updated.Username)
}

func TestFollowUnfollow(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	registerTestUser(t, svc, "celeb@example.com", "celeb")
	fan := registerTestUser(t, svc, "fan@example.com", "fan")

	fanID := uuid.MustParse(fan.User.ID)

	profile, err := svc.Follow(context.Background(), fanID, "celeb")
	require.NoError(t, err)
	assert.True(t, profile.Following)

	// Double follow is a conflict.
	_, err = svc.Follow(context.Background(), fanID, "celeb")
	assert.ErrorIs(t, err, user.ErrAlreadyFollowing)

	profile, err = svc.Unfollow(context.Background(), fanID, "celeb")
	require.NoError(t, err)
	assert.False(t, profile.Following)

	_, err = svc.Unfollow(context.Background(), fanID, "celeb")
	assert.ErrorIs(t, err, user.ErrNotFollowing)
}

func TestFollow_Self(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	registered := registerTestUser(t, svc, "jake@example.com", "jake")

	_, err := svc.Follow(context.Background(), uuid.MustParse(registered.User.ID), "jake")
	assert.ErrorIs(t, err, user.ErrCannotFollowSelf)
}

func TestGetProfile_AnonymousViewer(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)
	registerTestUser(t, svc, "jake@example.com", "jake")

	profile, err := svc.GetProfile(context.Background(), "jake", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "jake", profile.Username)
	assert.False(t, profile.Following)
}
