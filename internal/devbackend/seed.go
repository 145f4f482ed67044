package devbackend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
)

// SeedUser is one account created at startup.
type SeedUser struct {
	Username string
	Password string
	Role     domain.Role
	Email    string
}

// ParseSeedUsers reads a comma-separated list of
// username:password:role[:email] entries.
func ParseSeedUsers(s string) ([]SeedUser, error) {
	var out []SeedUser
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, fmt.Errorf("seed user %q: want username:password:role[:email]", entry)
		}
		role, ok := domain.ParseRole(parts[2])
		if !ok {
			return nil, fmt.Errorf("seed user %q: unknown role %q", parts[0], parts[2])
		}
		u := SeedUser{Username: parts[0], Password: parts[1], Role: role}
		if len(parts) == 4 {
			u.Email = parts[3]
		}
		out = append(out, u)
	}
	return out, nil
}

// Seed registers every user that does not exist yet.
func Seed(ctx context.Context, svc ports.AuthService, users []SeedUser, log zerolog.Logger) error {
	for _, u := range users {
		_, err := svc.Register(ctx, u.Username, u.Password, u.Email, u.Role)
		switch {
		case err == nil:
			log.Info().Str("username", u.Username).Str("role", string(u.Role)).Msg("seeded user")
		case errors.Is(err, domain.ErrUserExists):
			log.Debug().Str("username", u.Username).Msg("seed user already present")
		default:
			return fmt.Errorf("seed %s: %w", u.Username, err)
		}
	}
	return nil
}
