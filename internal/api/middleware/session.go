package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dentedu/web-gateway/internal/core/ports"
	"github.com/dentedu/web-gateway/internal/core/session"
)

// CtxSession is the echo context key holding the request's *session.Store.
const CtxSession = "session"

// Session binds the request to the session named by the cookie. Requests
// without the cookie get a store with an empty ID, which reads as signed out.
func Session(storage ports.SessionStorage, cookieName string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(cookieName); err == nil {
				id = ck.Value
			}
			store := session.Open(storage, id, ttl)

			c.Set(CtxSession, store)
			req := c.Request()
			c.SetRequest(req.WithContext(session.NewContext(req.Context(), store)))
			return next(c)
		}
	}
}

// SessionFrom returns the store bound by Session.
func SessionFrom(c echo.Context) (*session.Store, bool) {
	s, ok := c.Get(CtxSession).(*session.Store)
	return s, ok && s != nil
}
