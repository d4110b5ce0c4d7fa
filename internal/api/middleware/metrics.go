package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/proelectric/proadmin/internal/metrics"
)

// Metrics counts every served request by route template and final status.
// Errors are rendered here so the recorded status is the one sent.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.BackendRequestsTotal.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
				Inc()
			return nil
		}
	}
}
