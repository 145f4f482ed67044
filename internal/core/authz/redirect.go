package authz

import (
	"net/url"
	"strings"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

// RedirectRule maps the requested "next" destination and the resolved role
// to a route, or reports that it does not apply.
type RedirectRule func(next string, role domain.Role, roleKnown bool) (string, bool)

// PostSignInRules is evaluated top-down after a successful sign-in; the first
// rule that matches wins.
var PostSignInRules = []RedirectRule{
	NextDestination,
	RoleLanding,
	Home,
}

// NextDestination honours an explicit next destination when it is a local
// path that is not a public-only page.
func NextDestination(next string, _ domain.Role, _ bool) (string, bool) {
	if !isLocalPath(next) {
		return "", false
	}
	path := next
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if domain.IsPublicOnly(path) {
		return "", false
	}
	return next, true
}

// RoleLanding sends the user to their role's landing page.
func RoleLanding(_ string, role domain.Role, roleKnown bool) (string, bool) {
	if !roleKnown || !role.Valid() {
		return "", false
	}
	return role.LandingRoute(), true
}

// Home always matches.
func Home(string, domain.Role, bool) (string, bool) {
	return domain.RouteHome, true
}

// PostSignInRedirect applies PostSignInRules.
func PostSignInRedirect(next string, role domain.Role, roleKnown bool) string {
	for _, rule := range PostSignInRules {
		if target, ok := rule(next, role, roleKnown); ok {
			return target
		}
	}
	return domain.RouteHome
}

func isLocalPath(p string) bool {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
