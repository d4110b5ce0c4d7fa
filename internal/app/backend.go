package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/api"
	"github.com/proelectric/proadmin/internal/api/handler"
	"github.com/proelectric/proadmin/internal/core/ports"
	"github.com/proelectric/proadmin/internal/core/service"
	"github.com/proelectric/proadmin/internal/infrastructure/db/memory"
	mongodb "github.com/proelectric/proadmin/internal/infrastructure/db/mongo"
	redisdb "github.com/proelectric/proadmin/internal/infrastructure/db/redis"
	"github.com/proelectric/proadmin/internal/pkg/config"
)

// Backend is the wired reference backend.
type Backend struct {
	Echo    *echo.Echo
	closers []func(context.Context) error
}

// NewBackend connects the configured stores, seeds the owner account and
// builds the router. MongoDB and Redis are used only when configured;
// otherwise everything lives in memory.
func NewBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	b := &Backend{}
	checks := make(map[string]handler.Check)

	var (
		accounts ports.AccountRepository = memory.NewAccountRepository()
		orders   ports.OrderRepository   = memory.NewOrderRepository()
		revoker  ports.SessionRevoker    = memory.NewRevoker()
	)

	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Disconnect)
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

		accountRepo := mongodb.NewAccountRepository(db)
		orderRepo := mongodb.NewOrderRepository(db)
		if err := accountRepo.EnsureIndexes(ctx); err != nil {
			_ = b.Close(ctx)
			return nil, fmt.Errorf("account indexes: %w", err)
		}
		if err := orderRepo.EnsureIndexes(ctx); err != nil {
			_ = b.Close(ctx)
			return nil, fmt.Errorf("order indexes: %w", err)
		}
		accounts, orders = accountRepo, orderRepo
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb store")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, cfg.Redis)
		if err != nil {
			_ = b.Close(ctx)
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return rdb.Close() })
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		revoker = redisdb.NewRevoker(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis revocation store")
	}

	authService := service.NewAuthService(accounts, revoker, cfg.Backend.SessionSecret, cfg.Backend.SessionTTL)
	if err := authService.EnsureOwner(ctx, cfg.Backend.OwnerEmail, cfg.Backend.OwnerPassword); err != nil {
		_ = b.Close(ctx)
		return nil, fmt.Errorf("seed owner: %w", err)
	}

	b.Echo = api.NewRouter(api.Deps{
		Auth:          authService,
		Orders:        service.NewOrderService(orders, log.With().Str("component", "orders").Logger()),
		Users:         service.NewUserService(accounts, log.With().Str("component", "users").Logger()),
		Checks:        checks,
		Logger:        log,
		SecureCookies: cfg.Env == "production",
	})
	return b, nil
}

// Close releases database connections in reverse order of acquisition.
func (b *Backend) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
