package user

import (
	"errors"
	"net/http"
)

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")

	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")

	ErrAlreadyFollowing = errors.New("already following this profile")
	ErrNotFollowing     = errors.New("not following this profile")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTooManyAttempts    = errors.New("too many login attempts, please try again later")
	ErrCannotFollowSelf   = errors.New("cannot follow your own profile")
)

// GetHTTPStatusCode maps domain errors onto HTTP status codes so the
// handler layer stays a thin translation.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrUsernameAlreadyExists),
		errors.Is(err, ErrAlreadyFollowing),
		errors.Is(err, ErrNotFollowing):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrCannotFollowSelf):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
