package authz

import (
	"testing"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

func TestDecide(t *testing.T) {
	doctorOnly := []domain.Role{domain.RoleDoctor}

	cases := []struct {
		name string
		in   GuardInput
		want domain.Decision
	}{
		{
			name: "no token",
			in:   GuardInput{Allowed: doctorOnly, Requested: "/doctor/grading"},
			want: domain.Decision{Redirect: "/signin?next=%2Fdoctor%2Fgrading", Reason: domain.ReasonUnauthenticated},
		},
		{
			name: "no token on open page",
			in:   GuardInput{Requested: "/profile"},
			want: domain.Decision{Redirect: "/signin?next=%2Fprofile", Reason: domain.ReasonUnauthenticated},
		},
		{
			name: "unknown role fails closed",
			in:   GuardInput{HasToken: true, Allowed: doctorOnly, Requested: "/doctor/grading"},
			want: domain.Decision{Redirect: "/signin?next=%2Fdoctor%2Fgrading", Reason: domain.ReasonUnknownRole},
		},
		{
			name: "unknown role on open page",
			in:   GuardInput{HasToken: true, Requested: "/announcements"},
			want: domain.Decision{Redirect: "/signin?next=%2Fannouncements", Reason: domain.ReasonUnknownRole},
		},
		{
			name: "student on doctor page",
			in:   GuardInput{HasToken: true, Role: domain.RoleStudent, RoleKnown: true, Allowed: doctorOnly, Requested: "/doctor/grading"},
			want: domain.Decision{Redirect: "/student/dashboard", Reason: domain.ReasonRoleMismatch},
		},
		{
			name: "doctor on doctor page",
			in:   GuardInput{HasToken: true, Role: domain.RoleDoctor, RoleKnown: true, Allowed: doctorOnly, Requested: "/doctor/grading"},
			want: domain.Decision{Allow: true, Reason: domain.ReasonAllowed},
		},
		{
			name: "any role on open page",
			in:   GuardInput{HasToken: true, Role: domain.RoleAssistant, RoleKnown: true, Requested: "/profile"},
			want: domain.Decision{Allow: true, Reason: domain.ReasonAllowed},
		},
		{
			name: "landing page that refuses its own role",
			in:   GuardInput{HasToken: true, Role: domain.RoleStudent, RoleKnown: true, Allowed: doctorOnly, Requested: "/student/dashboard?tab=1"},
			want: domain.Decision{Redirect: "/signin", Reason: domain.ReasonRoleMismatch},
		},
		{
			name: "admin is not a superuser",
			in:   GuardInput{HasToken: true, Role: domain.RoleAdmin, RoleKnown: true, Allowed: doctorOnly, Requested: "/doctor/dashboard"},
			want: domain.Decision{Redirect: "/admin/dashboard", Reason: domain.ReasonRoleMismatch},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.in); got != tc.want {
				t.Fatalf("Decide() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDecide_NeverRedirectsToRequestedPage(t *testing.T) {
	roles := []domain.Role{domain.RoleStudent, domain.RoleDoctor, domain.RoleAssistant, domain.RoleAdmin}
	for _, p := range []string{"/student/dashboard", "/doctor/dashboard", "/assistant/dashboard", "/admin/dashboard"} {
		for _, allowed := range roles {
			for _, r := range roles {
				d := Decide(GuardInput{HasToken: true, Role: r, RoleKnown: true, Allowed: []domain.Role{allowed}, Requested: p})
				if !d.Allow && d.Redirect == p {
					t.Fatalf("redirect loop: role %s on %s", r, p)
				}
			}
		}
	}
}

func TestSignInURL(t *testing.T) {
	cases := map[string]string{
		"":                   "/signin",
		"/":                  "/signin",
		"/signin":            "/signin",
		"/student/grades":    "/signin?next=%2Fstudent%2Fgrades",
		"/profile?tab=email": "/signin?next=%2Fprofile%3Ftab%3Demail",
	}
	for in, want := range cases {
		if got := SignInURL(in); got != want {
			t.Errorf("SignInURL(%q) = %q, want %q", in, got, want)
		}
	}
}
