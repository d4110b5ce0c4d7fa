package domain

import (
	"errors"
	"time"
)

// Account is a staff user as stored by the reference backend, with the
// credential the client never sees.
type Account struct {
	User
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claims is what the backend's session cookie proves about its bearer.
type Claims struct {
	TokenID   string
	UserID    int64
	Role      Role
	ExpiresAt time.Time
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrSessionRevoked     = errors.New("session revoked")
)
