package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

// OrderService is the reference backend's order registry.
type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger, now: time.Now}
}

// CreateOrder registers a new lead. Orders always start as new; any other
// requested status is rejected.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		return nil, domain.NewValidationError("client_name is required")
	}
	if input.Status == "" {
		input.Status = domain.StatusNew
	}
	if input.Status != domain.StatusNew {
		return nil, domain.NewValidationError("new orders must have status new")
	}
	if input.WallType != "" && !input.WallType.Valid() {
		return nil, domain.NewValidationError("unknown wall_type")
	}
	if input.Area < 0 || input.Rooms < 0 {
		return nil, domain.NewValidationError("area and rooms must not be negative")
	}

	order := &domain.Order{
		ClientName:  strings.TrimSpace(input.ClientName),
		ClientPhone: strings.TrimSpace(input.ClientPhone),
		Address:     strings.TrimSpace(input.Address),
		Area:        input.Area,
		Rooms:       input.Rooms,
		WallType:    input.WallType,
		Status:      domain.StatusNew,
		Details: domain.OrderDetails{
			BOM:        []domain.BOMItem{},
			Financials: domain.Financials{Expenses: []domain.Expense{}},
		},
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Int64("order_id", created.ID).Str("client", created.ClientName).Msg("order created")
	return created, nil
}

// ListOrders returns one page of orders. "all" or an empty status means no
// filter; the page size defaults to 20 and is capped at 100.
func (s *OrderService) ListOrders(ctx context.Context, filter ports.ListOrdersFilter) ([]domain.Order, error) {
	if filter.Status == domain.StatusAll {
		filter.Status = ""
	}
	if filter.Status != "" && !domain.OrderStatus(filter.Status).Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultOrderPageSize
	}
	if filter.Limit > maxOrderPageSize {
		filter.Limit = maxOrderPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus moves an order to status.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("order_id", id).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("order status changed")
	return updated, nil
}
