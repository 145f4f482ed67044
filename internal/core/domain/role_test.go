package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"student", RoleStudent, true},
		{"DOCTOR", RoleDoctor, true},
		{" Assistant ", RoleAssistant, true},
		{"admin", RoleAdmin, true},
		{"teacher", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRole_LandingRoute(t *testing.T) {
	want := map[Role]string{
		RoleStudent:   "/student/dashboard",
		RoleDoctor:    "/doctor/dashboard",
		RoleAssistant: "/assistant/dashboard",
		RoleAdmin:     "/admin/dashboard",
	}
	for role, route := range want {
		if got := role.LandingRoute(); got != route {
			t.Errorf("%s.LandingRoute() = %q, want %q", role, got, route)
		}
	}
	if got := Role("janitor").LandingRoute(); got != "" {
		t.Errorf("unknown role landing = %q, want empty", got)
	}
}

func TestIsPublicOnly(t *testing.T) {
	for _, p := range []string{"/", "/signin", "/signup"} {
		if !IsPublicOnly(p) {
			t.Errorf("IsPublicOnly(%q) = false", p)
		}
	}
	for _, p := range []string{"/student/dashboard", "/profile", "/signin/extra"} {
		if IsPublicOnly(p) {
			t.Errorf("IsPublicOnly(%q) = true", p)
		}
	}
}

func TestAPIError_IsSentinels(t *testing.T) {
	unauthorized := &APIError{Kind: KindAuth, Status: 401, Message: MsgInvalidCredentials}
	disabled := &APIError{Kind: KindAuth, Status: 403, Message: MsgAccountDisabled}

	if !unauthorized.Is(ErrInvalidCredentials) || unauthorized.Is(ErrAccountDisabled) {
		t.Error("401 auth error should match ErrInvalidCredentials only")
	}
	if !disabled.Is(ErrAccountDisabled) || disabled.Is(ErrInvalidCredentials) {
		t.Error("403 auth error should match ErrAccountDisabled only")
	}
}
