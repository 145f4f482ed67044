package ports

import (
	"context"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

// RegisterInput is the payload forwarded to the backend's registration endpoint.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthBackend is the REST backend as seen by the gateway. Every failure is
// returned as a *domain.APIError.
type AuthBackend interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, token string) (*domain.User, error)
	Register(ctx context.Context, in RegisterInput) error
}

// Connectivity reports whether the backend is currently reachable. Online
// must not block.
type Connectivity interface {
	Online() bool
}
