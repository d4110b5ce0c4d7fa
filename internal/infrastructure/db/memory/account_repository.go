// Package memory holds process-local repositories for the reference backend.
// They back local development and tests when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/proelectric/proadmin/internal/core/domain"
)

type AccountRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Account
	nextID int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byID: make(map[int64]*domain.Account), nextID: 1}
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		if a.Username == account.Username {
			return nil, domain.ErrUserExists
		}
	}

	clone := *account
	clone.ID = r.nextID
	r.nextID++
	if clone.PlatformID == "" {
		clone.PlatformID = uuid.NewString()
	}
	r.byID[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	return r.find(func(a *domain.Account) bool { return a.Username == username })
}

func (r *AccountRepository) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	return r.find(func(a *domain.Account) bool { return a.ID == id })
}

func (r *AccountRepository) FindByPlatformID(_ context.Context, platformID string) (*domain.Account, error) {
	return r.find(func(a *domain.Account) bool { return a.PlatformID == platformID })
}

// List returns every account ordered by id.
func (r *AccountRepository) List(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AccountRepository) UpdateRole(_ context.Context, platformID string, role domain.Role) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		if a.PlatformID == platformID {
			a.Role = role
			a.UpdatedAt = time.Now().UTC()
			out := *a
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AccountRepository) find(match func(*domain.Account) bool) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if match(a) {
			out := *a
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
