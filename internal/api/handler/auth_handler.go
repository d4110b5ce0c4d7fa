package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/api/middleware"
	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
	"github.com/proelectric/proadmin/internal/metrics"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      zerolog.Logger
	secure      bool
}

// NewAuthHandler builds the auth endpoints. secure marks the session cookie
// HTTPS-only.
func NewAuthHandler(authService ports.AuthService, logger zerolog.Logger, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger, secure: secure}
}

// Login checks the credentials and sets the session cookie.
//
//	POST /login {username, password} -> user
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cred, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.BackendLoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Info().Str("username", req.Username).Msg("login rejected")
		}
		return err
	}
	metrics.BackendLoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    cred.Token,
		Path:     "/",
		Expires:  cred.ExpiresAt,
		MaxAge:   int(time.Until(cred.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, toUserResponse(cred.Account.User))
}

// Logout revokes the session, if any, and clears the cookie. It always
// succeeds so a client can sign out with a stale cookie.
//
//	GET /logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), ck.Value); err != nil {
			h.logger.Warn().Err(err).Msg("session revocation failed")
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out"})
}

// CurrentUser returns the user behind the session cookie.
//
//	GET /api/user -> user
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	account, err := h.authService.CurrentAccount(c.Request().Context(), claims)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "session user no longer exists")
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(account.User))
}
