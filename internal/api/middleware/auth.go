package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/proelectric/proadmin/internal/core/domain"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "proadmin_session"
	// ClaimsKey is where Auth stores the verified *domain.Claims.
	ClaimsKey = "claims"
	// RoleKey is where Auth stores the caller's role for RBAC.
	RoleKey = "role"
)

// SessionVerifier checks a session token.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Claims, error)
}

// Auth validates the session cookie and injects its claims into the context.
// Any failure is a 401, which the client treats as an expired session.
func Auth(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}

			claims, err := verifier.Verify(c.Request().Context(), ck.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(ClaimsKey, claims)
			c.Set(RoleKey, string(claims.Role))

			return next(c)
		}
	}
}
