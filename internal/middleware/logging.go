package middleware

import (
	"net/http"
	"time"

	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Logging writes one line per request. Server errors log at error level and
// client errors at warn.
func Logging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			kv := []interface{}{
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", req.RemoteAddr,
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Error(req.Context(), "HTTP request", kv...)
			case status >= http.StatusBadRequest:
				log.Warn(req.Context(), "HTTP request", kv...)
			default:
				log.Info(req.Context(), "HTTP request", kv...)
			}

			return nil
		}
	}
}
