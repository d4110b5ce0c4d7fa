package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

type OrderRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Order
	nextID int64
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{byID: make(map[int64]*domain.Order), nextID: 1}
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneOrder(*order)
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone

	out := cloneOrder(clone)
	return &out, nil
}

func (r *OrderRepository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := cloneOrder(*o)
	return &out, nil
}

// List applies the same filter and ordering as the Mongo repository:
// newest first, ties broken by id descending.
func (r *OrderRepository) List(_ context.Context, f ports.ListOrdersFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Order, 0, len(r.byID))
	for _, o := range r.byID {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		matched = append(matched, cloneOrder(*o))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if f.Offset >= len(matched) {
		return []domain.Order{}, nil
	}
	end := len(matched)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	out := cloneOrder(*o)
	return &out, nil
}

func cloneOrder(o domain.Order) domain.Order {
	o.Details.BOM = append([]domain.BOMItem{}, o.Details.BOM...)
	o.Details.Financials.Expenses = append([]domain.Expense{}, o.Details.Financials.Expenses...)
	return o
}
