package ports

import (
	"context"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

// UserRepository defines persistence for the development backend's accounts.
type UserRepository interface {
	// FindByLogin matches either the username or the email address.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
