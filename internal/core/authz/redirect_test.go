package authz

import (
	"testing"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

func TestPostSignInRedirect(t *testing.T) {
	cases := []struct {
		name      string
		next      string
		role      domain.Role
		roleKnown bool
		want      string
	}{
		{"next wins", "/student/grades", domain.RoleStudent, true, "/student/grades"},
		{"next keeps query", "/doctor/grading?course=4", domain.RoleDoctor, true, "/doctor/grading?course=4"},
		{"role landing", "", domain.RoleDoctor, true, "/doctor/dashboard"},
		{"public-only next ignored", "/signin", domain.RoleStudent, true, "/student/dashboard"},
		{"root next ignored", "/", domain.RoleAdmin, true, "/admin/dashboard"},
		{"protocol-relative ignored", "//evil.example/x", domain.RoleStudent, true, "/student/dashboard"},
		{"absolute url ignored", "http://evil.example/x", domain.RoleStudent, true, "/student/dashboard"},
		{"backslash trick ignored", "/\\evil.example", domain.RoleAssistant, true, "/assistant/dashboard"},
		{"relative ignored", "student/grades", domain.RoleStudent, true, "/student/dashboard"},
		{"unknown role goes home", "", "", false, "/"},
		{"unknown role still honours next", "/profile", "", false, "/profile"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PostSignInRedirect(tc.next, tc.role, tc.roleKnown); got != tc.want {
				t.Fatalf("PostSignInRedirect(%q, %q, %v) = %q, want %q", tc.next, tc.role, tc.roleKnown, got, tc.want)
			}
		})
	}
}
