// Package gateway exposes every backend operation the PROADMIN screens may
// invoke. Each operation composes the transport with the wire mapper; the
// operations the backend does not implement yet are answered locally and
// tagged as simulated.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
	"github.com/proelectric/proadmin/internal/infrastructure/transport"
	"github.com/proelectric/proadmin/internal/metrics"
)

// Gateway implements ports.Gateway on top of a ports.Requester.
type Gateway struct {
	req ports.Requester
	log zerolog.Logger

	now   func() time.Time
	newID func() string
}

var _ ports.Gateway = (*Gateway)(nil)

// New returns a Gateway that sends requests through req.
func New(req ports.Requester, log zerolog.Logger) *Gateway {
	return &Gateway{
		req:   req,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Login posts the credentials. The backend's auth scheme calls the e-mail
// field "username". A rejected sign-in is a 401 too, but it leaves any
// current session alone.
func (g *Gateway) Login(ctx context.Context, identifier, secret string) (*domain.User, error) {
	raw, err := g.req.Do(transport.WithoutExpiryHook(ctx), http.MethodPost, "/login", loginRequest{
		Username: identifier,
		Password: secret,
	})
	if err != nil {
		return nil, err
	}
	u := userFromBody(raw)
	return &u, nil
}

// Logout terminates the server session. Local session state is the
// caller's business.
func (g *Gateway) Logout(ctx context.Context) error {
	_, err := g.req.Do(ctx, http.MethodGet, "/logout", nil)
	return err
}

// CheckAuth probes the session. A 401, or a body that names nobody, means
// guest and is not an error.
func (g *Gateway) CheckAuth(ctx context.Context) (*domain.User, error) {
	raw, err := g.req.Do(transport.WithoutExpiryHook(ctx), http.MethodGet, "/api/user", nil)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, nil
		}
		return nil, err
	}
	u := userFromBody(raw)
	if u.ID == 0 && u.Username == "" && u.PlatformID == "" {
		return nil, nil
	}
	return &u, nil
}

// simulated records that op was answered without the backend.
func (g *Gateway) simulated(op string) {
	metrics.StubOperationsTotal.WithLabelValues(op).Inc()
	g.log.Warn().Str("operation", op).Msg("operation not implemented on backend, returning simulated result")
}
