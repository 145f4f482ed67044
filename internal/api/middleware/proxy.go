package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api/metrics"
	"github.com/dentedu/web-gateway/internal/core/session"
)

// BackendBearer rewrites a proxied request for the backend: the session
// token becomes the Authorization header and the browser's cookies are
// dropped.
func BackendBearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			req.Header.Del("Cookie")
			req.Header.Del("Authorization")

			if store, ok := SessionFrom(c); ok {
				if token, found, err := store.Token(req.Context()); err == nil && found {
					req.Header.Set("Authorization", "Bearer "+token)
				}
			}
			return next(c)
		}
	}
}

// ClearOnUnauthorized is a reverse-proxy response hook. A 401 from the
// backend means the token is no longer accepted, so the session that sent it
// is signed out.
func ClearOnUnauthorized(log zerolog.Logger) func(*http.Response) error {
	return func(resp *http.Response) error {
		if resp.StatusCode != http.StatusUnauthorized || resp.Request == nil {
			return nil
		}
		store, ok := session.FromContext(resp.Request.Context())
		if !ok {
			return nil
		}
		if err := store.Clear(resp.Request.Context()); err != nil {
			log.Warn().Err(err).Msg("failed to clear rejected session")
			return nil
		}
		metrics.SessionsClearedTotal.WithLabelValues("backend_rejected").Inc()
		log.Info().Str("path", resp.Request.URL.Path).Msg("backend rejected token; session cleared")
		return nil
	}
}
