package ports

import (
	"context"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// UserGateway covers the staff directory.
type UserGateway interface {
	GetUsers(ctx context.Context) ([]domain.User, error)
	// UpdateUserRole is keyed by platform id, never by the numeric list id.
	UpdateUserRole(ctx context.Context, platformID string, role domain.Role) (*domain.User, error)
	// ChangeUserRole refuses to touch an owner before calling UpdateUserRole.
	ChangeUserRole(ctx context.Context, target domain.User, role domain.Role) (*domain.User, error)
}
