package ports

import (
	"context"
	"time"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// AccountRepository stores the reference backend's staff accounts.
type AccountRepository interface {
	// Create assigns ID and, when empty, PlatformID. It fails with
	// domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByPlatformID(ctx context.Context, platformID string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	UpdateRole(ctx context.Context, platformID string, role domain.Role) (*domain.Account, error)
}

// SessionRevoker remembers logged-out session tokens until they expire.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
