package memory

import (
	"context"
	"sync"
	"time"
)

// Revoker keeps revoked session ids in a map, dropping them once their
// token would have expired anyway.
type Revoker struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewRevoker() *Revoker {
	return &Revoker{until: make(map[string]time.Time), now: time.Now}
}

func (r *Revoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.until[tokenID] = until
	r.sweepLocked()
	return nil
}

func (r *Revoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.until[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.until, tokenID)
		return false, nil
	}
	return true, nil
}

func (r *Revoker) sweepLocked() {
	now := r.now()
	for id, until := range r.until {
		if now.After(until) {
			delete(r.until, id)
		}
	}
}
