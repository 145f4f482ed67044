package authz

import (
	"net/url"
	"strings"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

// GuardInput is everything the guard needs to decide one navigation. It is
// gathered from local session state only.
type GuardInput struct {
	HasToken  bool
	Role      domain.Role
	RoleKnown bool
	// Allowed is the route's allowed-roles set; empty means any authenticated role.
	Allowed []domain.Role
	// Requested is the path (and query) the visitor asked for.
	Requested string
}

// Decide evaluates the guard. It always returns a decision.
func Decide(in GuardInput) domain.Decision {
	if !in.HasToken {
		return domain.Decision{Redirect: SignInURL(in.Requested), Reason: domain.ReasonUnauthenticated}
	}
	if !in.RoleKnown || !in.Role.Valid() {
		return domain.Decision{Redirect: SignInURL(in.Requested), Reason: domain.ReasonUnknownRole}
	}
	if len(in.Allowed) > 0 && !contains(in.Allowed, in.Role) {
		landing := in.Role.LandingRoute()
		if landing == requestPath(in.Requested) {
			// The role's own landing page refuses it; bouncing there would loop.
			return domain.Decision{Redirect: domain.RouteSignIn, Reason: domain.ReasonRoleMismatch}
		}
		return domain.Decision{Redirect: landing, Reason: domain.ReasonRoleMismatch}
	}
	return domain.Decision{Allow: true, Reason: domain.ReasonAllowed}
}

// SignInURL builds the sign-in location remembering the requested page.
func SignInURL(requested string) string {
	if requested == "" || domain.IsPublicOnly(requested) {
		return domain.RouteSignIn
	}
	return domain.RouteSignIn + "?next=" + url.QueryEscape(requested)
}

func requestPath(requested string) string {
	p, _, _ := strings.Cut(requested, "?")
	return p
}

func contains(roles []domain.Role, r domain.Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
