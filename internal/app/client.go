// Package app assembles the client core and the reference backend from
// configuration.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/core/service"
	"github.com/proelectric/proadmin/internal/infrastructure/gateway"
	"github.com/proelectric/proadmin/internal/infrastructure/transport"
	"github.com/proelectric/proadmin/internal/pkg/config"
)

// Client is the wired client core a UI shell talks to.
type Client struct {
	Gateway *gateway.Gateway
	Session *service.SessionService
}

// NewClient builds transport, gateway and session state. A 401 on a request
// made under the current session collapses it to unauthenticated; a late
// 401 from before the latest sign-in or sign-out is ignored.
func NewClient(cfg config.APIConfig, log zerolog.Logger) (*Client, error) {
	tr, err := transport.New(transport.Config{BaseURL: cfg.URL, Timeout: cfg.Timeout}, log.With().Str("component", "transport").Logger())
	if err != nil {
		return nil, fmt.Errorf("build transport: %w", err)
	}

	gw := gateway.New(tr, log.With().Str("component", "gateway").Logger())
	session := service.NewSessionService(gw, log.With().Str("component", "session").Logger())
	tr.TrackSession(session.Epoch)
	tr.OnSessionExpired(session.ExpireEpoch)

	return &Client{Gateway: gw, Session: session}, nil
}
