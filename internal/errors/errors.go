package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountLocked      = errors.New("account is temporarily locked due to too many failed login attempts")

	ErrMissingToken        = errors.New("access token is required")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrStoreUnavailable marks credential-store failures caused by the
	// backing database being unreachable, as opposed to a definitive lookup
	// miss. The authenticator degrades on it instead of rejecting.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
