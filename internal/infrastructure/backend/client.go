// Package backend is the gateway's HTTP client for the platform's REST
// backend: login, who-am-I and registration.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api/metrics"
	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10

	pathLogin    = "/auth/login"
	pathMe       = "/auth/me"
	pathRegister = "/auth/register"
)

// Client implements ports.AuthBackend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient returns a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

var _ ports.AuthBackend = (*Client)(nil)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	ID         any    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	FullName   string `json:"full_name"`
	DoctorName string `json:"doctor_name"`
}

// Login posts the credentials form-encoded and returns the bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathLogin, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("backend: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var out tokenResponse
	if err := c.do(req, "login", &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &domain.APIError{Kind: domain.KindServer, Status: http.StatusOK, Message: "The server did not return an access token."}
	}
	return out.AccessToken, nil
}

// Me fetches the authoritative user record for token.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathMe, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build me request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	var out meResponse
	if err := c.do(req, "me", &out); err != nil {
		return nil, err
	}

	role, _ := domain.ParseRole(out.Role)
	return &domain.User{
		ID:         idString(out.ID),
		Username:   out.Username,
		Email:      out.Email,
		FullName:   out.FullName,
		DoctorName: out.DoctorName,
		Role:       role,
	}, nil
}

// Register forwards a sign-up to the backend.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("backend: encode register: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathRegister, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("backend: build register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, "register", nil)
}

// do executes req and decodes a 2xx body into out (when non-nil). Non-2xx
// answers are normalised; transport failures become network errors.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("backend unreachable")
		return domain.NewNetworkError(domain.MsgUnreachable)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(endpoint, fmt.Sprint(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := Normalize(resp.StatusCode, raw)
		c.log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Str("kind", string(apiErr.Kind)).Msg("backend rejected request")
		return apiErr
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &domain.APIError{Kind: domain.KindServer, Status: resp.StatusCode, Message: "The server sent an unreadable response."}
	}
	return nil
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}
