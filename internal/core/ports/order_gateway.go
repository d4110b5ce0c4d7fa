package ports

import (
	"context"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders.
type ListOrdersFilter struct {
	Status string // domain.StatusAll or "" = no filter
	Limit  int
	Offset int
}

// OrderGateway covers the order registry and the order detail screen.
type OrderGateway interface {
	GetOrders(ctx context.Context, filter ListOrdersFilter) ([]domain.Order, error)
	GetOrderDetails(ctx context.Context, id int64) (*domain.Order, error)
	CreateManualOrder(ctx context.Context, form domain.OrderForm) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)

	// The following have no backend endpoint yet. They never fail and never
	// touch the network; results are tagged Simulated.
	UpdateOrderFinalPrice(ctx context.Context, id int64, current domain.Financials, price float64) domain.Result[domain.Financials]
	AddOrderExpense(ctx context.Context, id int64, current domain.Financials, expense domain.Expense) domain.Result[domain.Financials]
	UpdateOrderBOM(ctx context.Context, id int64, bom []domain.BOMItem) domain.Result[[]domain.BOMItem]
}
