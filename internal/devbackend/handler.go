package devbackend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dentedu/web-gateway/internal/api/middleware"
	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type loginJSON struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email,omitempty"`
	Role       domain.Role `json:"role"`
	FullName   string      `json:"full_name,omitempty"`
	DoctorName string      `json:"doctor_name,omitempty"`
	IsActive   bool        `json:"is_active"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		FullName:   u.FullName,
		DoctorName: u.DoctorName,
		IsActive:   u.Active,
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid role")
	}

	user, err := h.authService.Register(c.Request().Context(), strings.TrimSpace(req.Username), req.Password, req.Email, role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return echo.NewHTTPError(http.StatusBadRequest, "Username or email already exists")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Username and password are required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user account").SetInternal(err)
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a form-encoded username and password.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username or email"
// @Param        password  formData  string  true  "Password"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	return h.login(c, req.Username, req.Password)
}

// LoginJSON is Login for JSON clients.
//
// @Summary      Login (JSON)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginJSON  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login-json [post]
func (h *AuthHandler) LoginJSON(c echo.Context) error {
	var req loginJSON
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	return h.login(c, req.Username, req.Password)
}

func (h *AuthHandler) login(c echo.Context, username, password string) error {
	token, _, err := h.authService.Login(c.Request().Context(), strings.TrimSpace(username), password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
		case errors.Is(err, domain.ErrAccountDisabled):
			return echo.NewHTTPError(http.StatusForbidden, "Account is deactivated")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Authentication failed").SetInternal(err)
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the account behind the bearer token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.CtxUserID).(string)

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		case errors.Is(err, domain.ErrAccountDisabled):
			return echo.NewHTTPError(http.StatusForbidden, "Account is deactivated")
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Root is the backend's liveness endpoint, also probed by the gateway's
// connectivity monitor.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
