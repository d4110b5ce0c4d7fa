package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/proelectric/proadmin/internal/app"
	"github.com/proelectric/proadmin/internal/pkg/config"
	"github.com/proelectric/proadmin/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, App: "proadmin-backend"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := app.NewBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start backend")
	}
	backend.Echo.HideBanner = true
	backend.Echo.HidePort = true

	go func() {
		addr := ":" + cfg.Backend.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("http server listening")
		if err := backend.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := backend.Echo.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := backend.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("closing stores")
	}
}
