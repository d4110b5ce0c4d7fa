package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/proelectric/proadmin/internal/pkg/config"
)

// Connect opens the revocation store's client from cfg and pings it within
// cfg.Timeout.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, operationTimeout(cfg))
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func operationTimeout(cfg config.RedisConfig) time.Duration {
	if cfg.Timeout <= 0 {
		return 3 * time.Second
	}
	return cfg.Timeout
}

// clientOptions applies one timeout to dialing, reads and writes.
func clientOptions(cfg config.RedisConfig) *redis.Options {
	timeout := operationTimeout(cfg)
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   cfg.ClientName,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}
