package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Audit returns middleware that records every mutating access to a clinical
// record. Reads are not audited; the request logger already covers them.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			if method == "GET" || method == "HEAD" || method == "OPTIONS" {
				return err
			}
			path := c.Request().URL.Path
			if !strings.HasPrefix(path, "/api/v1/") {
				return err
			}

			rid, _ := c.Get("request_id").(string)
			logger.Info().
				Str("request_id", rid).
				Str("method", method).
				Str("path", path).
				Str("record", recordArea(path)).
				Str("phn", phnFromRequest(c)).
				Int("status", c.Response().Status).
				Str("remote_ip", c.RealIP()).
				Msg("record access")

			return err
		}
	}
}

// recordArea extracts the record area ("donors", "surgeries", ...) from an
// /api/v1 path.
func recordArea(path string) string {
	rest := strings.TrimPrefix(path, "/api/v1/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func phnFromRequest(c echo.Context) string {
	if phn := c.Param("phn"); phn != "" {
		return phn
	}
	return c.QueryParam("phn")
}
