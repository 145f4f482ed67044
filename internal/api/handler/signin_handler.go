package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api/middleware"
	"github.com/dentedu/web-gateway/internal/core/authz"
	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
	"github.com/dentedu/web-gateway/internal/core/service"
	"github.com/dentedu/web-gateway/internal/core/session"
)

// SignInFlow is what the session handler needs from the sign-in service.
type SignInFlow interface {
	SignIn(ctx context.Context, in service.SignInInput) (*service.SignInResult, error)
	SignUp(ctx context.Context, in service.SignUpInput) error
	SignOut(ctx context.Context, store *session.Store) error
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	// RememberMaxAge is the cookie lifetime when "remember me" is ticked;
	// otherwise the cookie lasts for the browser session.
	RememberMaxAge time.Duration
}

// SessionHandler serves sign-in, sign-up, sign-out and the session summary.
type SessionHandler struct {
	flow   SignInFlow
	online ports.Connectivity
	cookie CookieOptions
	log    zerolog.Logger
}

func NewSessionHandler(flow SignInFlow, online ports.Connectivity, cookie CookieOptions, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{flow: flow, online: online, cookie: cookie, log: log}
}

type signInRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Remember string `form:"remember"`
	Next     string `form:"next"`
}

type signUpRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

// formState is the sign-in / sign-up page model: what to pre-fill, which
// input gets focus and the inline error, if any.
type formState struct {
	Page     string           `json:"page"`
	Username string           `json:"username,omitempty"`
	Email    string           `json:"email,omitempty"`
	Role     string           `json:"role,omitempty"`
	Next     string           `json:"next,omitempty"`
	Remember bool             `json:"remember"`
	Online   bool             `json:"online"`
	Focus    string           `json:"focus"`
	Error    *domain.APIError `json:"error,omitempty"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Role          domain.Role  `json:"role,omitempty"`
	User          *domain.User `json:"user,omitempty"`
	Remember      bool         `json:"remember"`
	Landing       string       `json:"landing,omitempty"`
}

// SignInForm handles GET /signin.
//
// @Summary      Sign-in page model
// @Tags         session
// @Produce      json
// @Param        next  query     string  false  "Page to return to after sign-in"
// @Success      200   {object}  formState
// @Router       /signin [get]
func (h *SessionHandler) SignInForm(c echo.Context) error {
	remember := false
	if store, ok := middleware.SessionFrom(c); ok {
		remember = store.Remember(c.Request().Context())
	}
	return c.JSON(http.StatusOK, formState{
		Page:     "signin",
		Next:     c.QueryParam("next"),
		Remember: remember,
		Online:   h.online.Online(),
		Focus:    "username",
	})
}

// SignIn handles POST /signin.
//
// @Summary      Sign in
// @Tags         session
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true   "Username or email"
// @Param        password  formData  string  true   "Password"
// @Param        remember  formData  string  false  "Remember me (on/true)"
// @Param        next      formData  string  false  "Page to return to"
// @Success      303
// @Failure      401       {object}  formState
// @Failure      403       {object}  formState
// @Failure      422       {object}  formState
// @Failure      429       {object}  formState
// @Failure      502       {object}  formState
// @Failure      503       {object}  formState
// @Router       /signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if req.Next == "" {
		req.Next = c.QueryParam("next")
	}
	remember := isChecked(req.Remember)

	ctx := c.Request().Context()
	res, err := h.flow.SignIn(ctx, service.SignInInput{
		Username: req.Username,
		Password: req.Password,
		Remember: remember,
		Next:     req.Next,
	})
	if err != nil {
		apiErr, _ := domain.AsAPIError(err)
		return c.JSON(failureStatus(apiErr), formState{
			Page:     "signin",
			Username: req.Username,
			Next:     req.Next,
			Remember: remember,
			Online:   h.online.Online(),
			Focus:    service.FocusField(err),
			Error:    apiErr,
		})
	}

	// Drop the session the browser arrived with; the new one replaces it.
	if old, ok := middleware.SessionFrom(c); ok && old.ID() != "" && old.ID() != res.Session.ID() {
		if err := old.Clear(ctx); err != nil {
			h.log.Warn().Err(err).Msg("failed to clear previous session")
		}
	}

	h.setCookie(c, res.Session.ID(), remember)
	return c.Redirect(http.StatusSeeOther, res.Redirect)
}

// SignOut handles POST /signout.
//
// @Summary      Sign out
// @Tags         session
// @Success      303
// @Router       /signout [post]
//
// A remembered session keeps its cookie so the sign-in form can still read
// the hint; the token and cached user are gone either way.
func (h *SessionHandler) SignOut(c echo.Context) error {
	remember := false
	if store, ok := middleware.SessionFrom(c); ok {
		ctx := c.Request().Context()
		if err := h.flow.SignOut(ctx, store); err != nil {
			return err
		}
		remember = store.Remember(ctx)
	}
	if !remember {
		h.expireCookie(c)
	}
	return c.Redirect(http.StatusSeeOther, domain.RouteSignIn)
}

// SignUpForm handles GET /signup.
//
// @Summary      Sign-up page model
// @Tags         session
// @Produce      json
// @Success      200  {object}  formState
// @Router       /signup [get]
func (h *SessionHandler) SignUpForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formState{
		Page:   "signup",
		Online: h.online.Online(),
		Focus:  "username",
	})
}

// SignUp handles POST /signup.
//
// @Summary      Sign up
// @Tags         session
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Param        role      formData  string  true  "student, doctor or assistant"
// @Success      303
// @Failure      400       {object}  formState
// @Failure      422       {object}  formState
// @Failure      503       {object}  formState
// @Router       /signup [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	err := h.flow.SignUp(c.Request().Context(), service.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		apiErr, ok := domain.AsAPIError(err)
		if !ok {
			return err
		}
		focus := apiErr.Field
		if focus == "" {
			focus = "username"
		}
		return c.JSON(failureStatus(apiErr), formState{
			Page:     "signup",
			Username: req.Username,
			Email:    req.Email,
			Role:     req.Role,
			Online:   h.online.Online(),
			Focus:    focus,
			Error:    apiErr,
		})
	}
	return c.Redirect(http.StatusSeeOther, domain.RouteSignIn)
}

// Current handles GET /session.
//
// @Summary      Current session summary
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	store, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	ctx := c.Request().Context()
	resp := sessionResponse{
		Authenticated: store.IsAuthed(ctx),
		Remember:      store.Remember(ctx),
	}
	if resp.Authenticated {
		if role, known := authz.ResolveRole(ctx, store); known {
			resp.Role = role
			resp.Landing = role.LandingRoute()
		}
		if u, found, err := store.User(ctx); err == nil && found {
			resp.User = u
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) setCookie(c echo.Context, id string, remember bool) {
	ck := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if remember && h.cookie.RememberMaxAge > 0 {
		ck.MaxAge = int(h.cookie.RememberMaxAge.Seconds())
	}
	c.SetCookie(ck)
}

func (h *SessionHandler) expireCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// failureStatus picks the HTTP status for a failed form submission.
func failureStatus(e *domain.APIError) int {
	if e == nil {
		return http.StatusBadGateway
	}
	switch e.Kind {
	case domain.KindValidation:
		if e.Status == http.StatusBadRequest {
			return http.StatusBadRequest
		}
		return http.StatusUnprocessableEntity
	case domain.KindAuth:
		if e.Status == http.StatusForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case domain.KindNetwork:
		return http.StatusServiceUnavailable
	}
	if e.Status == http.StatusTooManyRequests {
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
