package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dentedu/web-gateway/internal/api/middleware"
	"github.com/dentedu/web-gateway/internal/core/domain"
)

// ctxIdentity returns what the guard resolved for this navigation. The user
// record is nil when the post-login lookup failed and only the token claim
// is known.
func ctxIdentity(c echo.Context) (domain.Role, *domain.User) {
	role, _ := c.Get(middleware.CtxResolvedRole).(domain.Role)
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	return role, user
}
