package ports

import (
	"context"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

// AuthService issues and verifies credentials for the development backend.
type AuthService interface {
	Register(ctx context.Context, username, password, email string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
