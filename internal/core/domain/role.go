package domain

import "strings"

// Role is the permission class of an authenticated user.
type Role string

const (
	RoleStudent   Role = "student"
	RoleDoctor    Role = "doctor"
	RoleAssistant Role = "assistant"
	RoleAdmin     Role = "admin"
)

// Public-only routes. A signed-in user is never sent back to one of these
// after sign-in.
const (
	RouteHome   = "/"
	RouteSignIn = "/signin"
	RouteSignUp = "/signup"
)

var landingRoutes = map[Role]string{
	RoleStudent:   "/student/dashboard",
	RoleDoctor:    "/doctor/dashboard",
	RoleAssistant: "/assistant/dashboard",
	RoleAdmin:     "/admin/dashboard",
}

// ParseRole maps a raw role string onto the closed Role set. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := landingRoutes[r]; !ok {
		return "", false
	}
	return r, true
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := landingRoutes[r]
	return ok
}

// LandingRoute returns the default page for the role, or "" for an unknown role.
func (r Role) LandingRoute() string {
	return landingRoutes[r]
}

// IsPublicOnly reports whether path is one of the routes that only make sense
// to a signed-out visitor.
func IsPublicOnly(path string) bool {
	switch path {
	case RouteHome, RouteSignIn, RouteSignUp:
		return true
	}
	return false
}
