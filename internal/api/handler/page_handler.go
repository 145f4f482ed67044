package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentedu/web-gateway/internal/api/middleware"
	"github.com/dentedu/web-gateway/internal/core/authz"
	"github.com/dentedu/web-gateway/internal/core/domain"
)

// PageRoute declares one protected page. An empty Roles list admits any
// authenticated role.
type PageRoute struct {
	Path  string
	Name  string
	Title string
	Roles []domain.Role
}

// Pages is the protected page table served by the gateway.
var Pages = []PageRoute{
	{Path: "/student/dashboard", Name: "student-dashboard", Title: "Dashboard", Roles: []domain.Role{domain.RoleStudent}},
	{Path: "/student/courses", Name: "student-courses", Title: "My Courses", Roles: []domain.Role{domain.RoleStudent}},
	{Path: "/student/assignments", Name: "student-assignments", Title: "Assignments", Roles: []domain.Role{domain.RoleStudent}},
	{Path: "/student/submissions", Name: "student-submissions", Title: "Submissions", Roles: []domain.Role{domain.RoleStudent}},
	{Path: "/student/grades", Name: "student-grades", Title: "Grades", Roles: []domain.Role{domain.RoleStudent}},

	{Path: "/doctor/dashboard", Name: "doctor-dashboard", Title: "Dashboard", Roles: []domain.Role{domain.RoleDoctor}},
	{Path: "/doctor/courses", Name: "doctor-courses", Title: "Courses", Roles: []domain.Role{domain.RoleDoctor}},
	{Path: "/doctor/grading", Name: "doctor-grading", Title: "Grading", Roles: []domain.Role{domain.RoleDoctor}},
	{Path: "/doctor/analytics", Name: "doctor-analytics", Title: "Analytics", Roles: []domain.Role{domain.RoleDoctor}},
	{Path: "/doctor/students", Name: "doctor-students", Title: "Students", Roles: []domain.Role{domain.RoleDoctor}},

	{Path: "/assistant/dashboard", Name: "assistant-dashboard", Title: "Dashboard", Roles: []domain.Role{domain.RoleAssistant}},
	{Path: "/assistant/grading", Name: "assistant-grading", Title: "Grading", Roles: []domain.Role{domain.RoleAssistant}},

	{Path: "/admin/dashboard", Name: "admin-dashboard", Title: "Dashboard", Roles: []domain.Role{domain.RoleAdmin}},
	{Path: "/admin/users", Name: "admin-users", Title: "Users", Roles: []domain.Role{domain.RoleAdmin}},

	{Path: "/announcements", Name: "announcements", Title: "Announcements"},
	{Path: "/profile", Name: "profile", Title: "Profile"},
}

type pageShell struct {
	Page  string       `json:"page"`
	Title string       `json:"title"`
	Role  domain.Role  `json:"role"`
	User  *domain.User `json:"user,omitempty"`
	Name  string       `json:"name,omitempty"`
}

// Page renders the shell for a page the guard has already admitted.
func Page(p PageRoute) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, user := ctxIdentity(c)
		shell := pageShell{
			Page:  p.Name,
			Title: p.Title,
			Role:  role,
			User:  user,
		}
		if user != nil {
			shell.Name = user.DisplayName()
		}
		return c.JSON(http.StatusOK, shell)
	}
}

// Home handles GET /. Signed-in visitors go to their landing page, everyone
// else to sign-in.
//
// @Summary      Entry point
// @Tags         pages
// @Success      302
// @Router       / [get]
func (h *SessionHandler) Home(c echo.Context) error {
	if store, ok := middleware.SessionFrom(c); ok {
		ctx := c.Request().Context()
		if store.IsAuthed(ctx) {
			if role, known := authz.ResolveRole(ctx, store); known {
				return c.Redirect(http.StatusFound, role.LandingRoute())
			}
		}
	}
	return c.Redirect(http.StatusFound, domain.RouteSignIn)
}
