package gateway

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

const defaultPageSize = 20

// GetOrders lists orders, newest first as the server decides. "all" or an
// empty status means no status filter.
func (g *Gateway) GetOrders(ctx context.Context, filter ports.ListOrdersFilter) ([]domain.Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if filter.Status != "" && filter.Status != domain.StatusAll {
		q.Set("status", filter.Status)
	}

	raw, err := g.req.Do(ctx, http.MethodGet, "/api/orders?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	items := decodeList(raw)
	orders := make([]domain.Order, 0, len(items))
	for _, it := range items {
		orders = append(orders, orderFromBody(it))
	}
	return orders, nil
}

func (g *Gateway) GetOrderDetails(ctx context.Context, id int64) (*domain.Order, error) {
	raw, err := g.req.Do(ctx, http.MethodGet, orderPath(id), nil)
	if err != nil {
		return nil, err
	}
	o := orderFromBody(raw)
	return &o, nil
}

// CreateManualOrder sends the form under the backend's field names with
// area and rooms coerced to integers. New orders always start as "new".
func (g *Gateway) CreateManualOrder(ctx context.Context, form domain.OrderForm) (*domain.Order, error) {
	raw, err := g.req.Do(ctx, http.MethodPost, "/api/orders", toCreateOrderRequest(form))
	if err != nil {
		return nil, err
	}
	o := orderFromBody(raw)
	return &o, nil
}

// UpdateOrderStatus moves an order to any of the five statuses.
func (g *Gateway) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	raw, err := g.req.Do(ctx, http.MethodPut, orderPath(id)+"/status", statusRequest{Status: string(status)})
	if err != nil {
		return nil, err
	}
	o := orderFromBody(raw)
	return &o, nil
}

// UpdateOrderFinalPrice returns current with the new price and the totals
// recomputed. There is no backend endpoint yet.
func (g *Gateway) UpdateOrderFinalPrice(_ context.Context, id int64, current domain.Financials, price float64) domain.Result[domain.Financials] {
	g.simulated("UpdateOrderFinalPrice")

	f := cloneFinancials(current)
	f.FinalPrice = finite(price)
	f.Recalculate()
	return domain.Simulate(f)
}

// AddOrderExpense returns current with expense appended and the totals
// recomputed. There is no backend endpoint yet.
func (g *Gateway) AddOrderExpense(_ context.Context, id int64, current domain.Financials, expense domain.Expense) domain.Result[domain.Financials] {
	g.simulated("AddOrderExpense")

	if expense.ID == "" {
		expense.ID = g.newID()
	}
	if expense.Date.IsZero() {
		expense.Date = g.now()
	}
	expense.Amount = finite(expense.Amount)

	f := cloneFinancials(current)
	f.Expenses = append(f.Expenses, expense)
	f.Recalculate()
	return domain.Simulate(f)
}

// UpdateOrderBOM replaces the whole bill of materials. Lines are unique by
// name; a repeated name overwrites the earlier line. There is no backend
// endpoint yet.
func (g *Gateway) UpdateOrderBOM(_ context.Context, id int64, bom []domain.BOMItem) domain.Result[[]domain.BOMItem] {
	g.simulated("UpdateOrderBOM")
	return domain.Simulate(domain.NormalizeBOM(bom))
}

func orderPath(id int64) string {
	return "/api/orders/" + strconv.FormatInt(id, 10)
}

func cloneFinancials(f domain.Financials) domain.Financials {
	out := f
	out.Expenses = make([]domain.Expense, len(f.Expenses), len(f.Expenses)+1)
	copy(out.Expenses, f.Expenses)
	return out
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
