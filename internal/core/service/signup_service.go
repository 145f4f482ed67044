package service

import (
	"context"
	"strings"

	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
)

// SignUpInput is the submitted registration form. Admin accounts cannot be
// self-registered.
type SignUpInput struct {
	Username string `validate:"required,min=3,max=64,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=128"`
	Role     string `validate:"required,oneof=student doctor assistant"`
}

// SignUp validates the form and forwards it to the backend. It never creates
// a session; the new user signs in afterwards.
func (s *SignInService) SignUp(ctx context.Context, in SignUpInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	if err := s.check.Struct(in); err != nil {
		return ValidationError(err)
	}
	if !s.online.Online() {
		return domain.NewNetworkError(domain.MsgOffline)
	}

	err := s.backend.Register(ctx, ports.RegisterInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		s.log.Info().Err(err).Str("username", in.Username).Msg("sign-up rejected")
		return err
	}
	s.log.Info().Str("username", in.Username).Str("role", in.Role).Msg("signed up")
	return nil
}
