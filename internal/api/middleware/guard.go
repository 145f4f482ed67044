package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api/metrics"
	"github.com/dentedu/web-gateway/internal/core/authz"
	"github.com/dentedu/web-gateway/internal/core/domain"
)

// Context keys set by Guard on allowed navigations.
const (
	CtxResolvedRole = "resolved_role"
	CtxUser         = "user"
)

// Guard gates a protected page. With no roles any authenticated role is
// accepted. It answers with a redirect or calls next; it never fails the
// request itself.
func Guard(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, role := evaluate(c, roles)
			metrics.GuardDecisionsTotal.WithLabelValues(d.Reason).Inc()

			if !d.Allow {
				return c.Redirect(http.StatusFound, d.Redirect)
			}
			c.Set(CtxResolvedRole, role)
			return next(c)
		}
	}
}

// APIGuard protects proxied API calls: the same decision, but a signed-out
// caller gets 401 instead of a redirect. A session whose token carries no
// usable role can never pass, so it is cleared.
func APIGuard(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, role := evaluate(c, nil)
			if !d.Allow {
				if d.Reason == domain.ReasonUnknownRole {
					clearUnusable(c, log)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			c.Set(CtxResolvedRole, role)
			return next(c)
		}
	}
}

func clearUnusable(c echo.Context, log zerolog.Logger) {
	store, ok := SessionFrom(c)
	if !ok {
		return
	}
	if err := store.Clear(c.Request().Context()); err != nil {
		log.Warn().Err(err).Msg("failed to clear session without a usable role")
		return
	}
	metrics.SessionsClearedTotal.WithLabelValues(domain.ReasonUnknownRole).Inc()
	log.Info().Str("path", c.Request().URL.Path).Msg("token carries no usable role; session cleared")
}

func evaluate(c echo.Context, roles []domain.Role) (domain.Decision, domain.Role) {
	in := authz.GuardInput{
		Allowed:   roles,
		Requested: c.Request().URL.RequestURI(),
	}

	store, ok := SessionFrom(c)
	if ok {
		ctx := c.Request().Context()
		in.HasToken = store.IsAuthed(ctx)
		if in.HasToken {
			in.Role, in.RoleKnown = authz.ResolveRole(ctx, store)
			if u, found, err := store.User(ctx); err == nil && found {
				c.Set(CtxUser, u)
			}
		}
	}
	return authz.Decide(in), in.Role
}
