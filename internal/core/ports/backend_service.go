package ports

import (
	"context"
	"time"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// Credential is a freshly signed session token.
type Credential struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}

// AuthService is the reference backend's credential check and session
// issuer.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*Credential, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*domain.Claims, error)
	CurrentAccount(ctx context.Context, claims *domain.Claims) (*domain.Account, error)
}

// OrderService is the reference backend's order registry.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, filter ListOrdersFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

// UserService is the reference backend's staff directory.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ChangeRole(ctx context.Context, platformID string, role domain.Role) (*domain.User, error)
}
