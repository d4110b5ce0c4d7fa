package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
	"github.com/proelectric/proadmin/internal/infrastructure/db/memory"
)

// stubOrderRepo records the filter it was asked for and answers with a
// fixed page.
type stubOrderRepo struct {
	*memory.OrderRepository
	lastFilter ports.ListOrdersFilter
	listErr    error
}

func (r *stubOrderRepo) List(ctx context.Context, f ports.ListOrdersFilter) ([]domain.Order, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.OrderRepository.List(ctx, f)
}

func newTestOrderService() (*OrderService, *stubOrderRepo) {
	repo := &stubOrderRepo{OrderRepository: memory.NewOrderRepository()}
	svc := NewOrderService(repo, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, _ := newTestOrderService()

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		ClientName: " Dana ",
		Address:    "Abay 10",
		Area:       75,
		Rooms:      3,
		WallType:   domain.WallConcrete,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != 1 || order.ClientName != "Dana" || order.Status != domain.StatusNew {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.Details.BOM == nil || order.Details.Financials.Expenses == nil {
		t.Fatalf("details must start as empty lists, got %+v", order.Details)
	}
	if !order.CreatedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %v", order.CreatedAt)
	}
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()

	inputs := []ports.CreateOrderInput{
		{ClientName: "  "},
		{ClientName: "Dana", Status: domain.StatusWork},
		{ClientName: "Dana", WallType: domain.WallType("wood")},
		{ClientName: "Dana", Area: -1},
	}
	for _, in := range inputs {
		if _, err := svc.CreateOrder(ctx, in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected validation error, got %v", in, err)
		}
	}
}

func TestOrderService_ListOrders_NormalizesFilter(t *testing.T) {
	svc, repo := newTestOrderService()
	ctx := context.Background()

	cases := []struct {
		in   ports.ListOrdersFilter
		want ports.ListOrdersFilter
	}{
		{ports.ListOrdersFilter{Status: "all"}, ports.ListOrdersFilter{Limit: 20}},
		{ports.ListOrdersFilter{Status: "work", Limit: 500, Offset: -3}, ports.ListOrdersFilter{Status: "work", Limit: 100}},
		{ports.ListOrdersFilter{Limit: 5, Offset: 10}, ports.ListOrdersFilter{Limit: 5, Offset: 10}},
	}
	for _, tc := range cases {
		orders, err := svc.ListOrders(ctx, tc.in)
		if err != nil {
			t.Fatalf("ListOrders(%+v): %v", tc.in, err)
		}
		if orders == nil {
			t.Fatalf("expected empty list, not nil")
		}
		if repo.lastFilter != tc.want {
			t.Fatalf("ListOrders(%+v) queried %+v, want %+v", tc.in, repo.lastFilter, tc.want)
		}
	}

	if _, err := svc.ListOrders(ctx, ports.ListOrdersFilter{Status: "archived"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestOrderService_ListOrders_RepoError(t *testing.T) {
	svc, repo := newTestOrderService()
	repo.listErr = errors.New("boom")

	if _, err := svc.ListOrders(context.Background(), ports.ListOrdersFilter{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()
	created, _ := svc.CreateOrder(ctx, ports.CreateOrderInput{ClientName: "Dana"})

	for _, next := range []domain.OrderStatus{domain.StatusWork, domain.StatusCancel, domain.StatusNew} {
		updated, err := svc.UpdateStatus(ctx, created.ID, next)
		if err != nil {
			t.Fatalf("UpdateStatus(%s): %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("expected %s, got %s", next, updated.Status)
		}
	}

	if _, err := svc.UpdateStatus(ctx, created.ID, domain.OrderStatus("archived")); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, 99, domain.StatusWork); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
