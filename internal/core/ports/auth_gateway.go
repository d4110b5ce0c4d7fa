package ports

import (
	"context"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// AuthGateway is the slice of the gateway the session service depends on.
type AuthGateway interface {
	Login(ctx context.Context, identifier, secret string) (*domain.User, error)
	// Logout terminates the server session. It never touches local session state.
	Logout(ctx context.Context) error
	// CheckAuth returns the current user, or (nil, nil) when there is no
	// valid session.
	CheckAuth(ctx context.Context) (*domain.User, error)
}
