package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/proelectric/proadmin/internal/api/middleware"
	"github.com/proelectric/proadmin/internal/core/domain"
)

// ctxClaims extracts the session claims injected by the session middleware
// and fails fast when the middleware did not run.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if claims == nil || claims.UserID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return claims, nil
}
