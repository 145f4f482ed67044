package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "short"), http.StatusTeapot},
		{"validation", domain.NewValidationError("username is required"), http.StatusUnprocessableEntity},
		{"auth 403", &domain.APIError{Kind: domain.KindAuth, Status: 403, Message: domain.MsgAccountDisabled}, http.StatusForbidden},
		{"network", domain.NewNetworkError(domain.MsgOffline), http.StatusServiceUnavailable},
		{"no session", fmt.Errorf("proxy: %w", domain.ErrNoSession), http.StatusUnauthorized},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}
