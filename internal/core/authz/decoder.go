// Package authz derives a role from the session and decides whether a
// navigation to a protected page may proceed.
package authz

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/session"
)

var unverified = jwt.NewParser()

// RoleFromToken reads the role claim from a JWT without verifying its
// signature. Any decode failure yields no role.
func RoleFromToken(token string) (role domain.Role, ok bool) {
	if token == "" {
		return "", false
	}
	defer func() {
		if recover() != nil {
			role, ok = "", false
		}
	}()

	claims := jwt.MapClaims{}
	if _, _, err := unverified.ParseUnverified(token, claims); err != nil {
		return "", false
	}
	raw, isString := claims["role"].(string)
	if !isString {
		return "", false
	}
	return domain.ParseRole(raw)
}

// ResolveRole returns the role for the session. The cached user record is
// authoritative; the token claim is only consulted when no usable record is
// cached.
func ResolveRole(ctx context.Context, s *session.Store) (domain.Role, bool) {
	if u, ok, err := s.User(ctx); err == nil && ok {
		if r, valid := domain.ParseRole(string(u.Role)); valid {
			return r, true
		}
	}
	tok, ok, err := s.Token(ctx)
	if err != nil || !ok {
		return "", false
	}
	return RoleFromToken(tok)
}
