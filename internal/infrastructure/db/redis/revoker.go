package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker records logged-out session ids in Redis. Each key expires with
// the token it revokes, so the set never outgrows the live sessions.
// Key format: revoked:<token_id>
type Revoker struct {
	client *redis.Client
	now    func() time.Time
}

// NewRevoker creates a Revoker wrapping the given Redis client.
func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{client: client, now: time.Now}
}

// Revoke marks tokenID as logged out until the given time.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was logged out.
func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (r *Revoker) key(tokenID string) string {
	return "revoked:" + tokenID
}
