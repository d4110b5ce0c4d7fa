package ports

import (
	"context"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// OrderRepository stores the reference backend's orders. List orders newest
// first.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

// CreateOrderInput is a validated order-creation request.
type CreateOrderInput struct {
	ClientName  string
	ClientPhone string
	Address     string
	Area        float64
	Rooms       int
	WallType    domain.WallType
	Status      domain.OrderStatus
}
