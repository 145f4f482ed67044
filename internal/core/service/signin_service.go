package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api/metrics"
	"github.com/dentedu/web-gateway/internal/core/authz"
	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
	"github.com/dentedu/web-gateway/internal/core/session"
)

// SignInInput is the submitted sign-in form.
type SignInInput struct {
	Username string `validate:"required,min=3,max=64,username"`
	Password string `validate:"required,min=6,max=128"`
	Remember bool
	Next     string
}

// SignInResult describes a session that was just created.
type SignInResult struct {
	Session  *session.Store
	User     *domain.User
	Role     domain.Role
	Redirect string
}

// SessionOptions configure how long new sessions live.
type SessionOptions struct {
	TTL         time.Duration
	RememberTTL time.Duration
}

// SignInService is the only writer of new sessions.
type SignInService struct {
	backend ports.AuthBackend
	online  ports.Connectivity
	storage ports.SessionStorage
	opts    SessionOptions
	check   *validator.Validate
	log     zerolog.Logger
}

func NewSignInService(
	backend ports.AuthBackend,
	online ports.Connectivity,
	storage ports.SessionStorage,
	opts SessionOptions,
	log zerolog.Logger,
) *SignInService {
	return &SignInService{
		backend: backend,
		online:  online,
		storage: storage,
		opts:    opts,
		check:   NewFormValidator(),
		log:     log,
	}
}

// SignIn validates the form, authenticates against the backend and persists
// a fresh session. Failures are returned as *domain.APIError and leave no
// session state behind.
func (s *SignInService) SignIn(ctx context.Context, in SignInInput) (*SignInResult, error) {
	in.Username = strings.TrimSpace(in.Username)

	if err := s.check.Struct(in); err != nil {
		return nil, s.fail(ValidationError(err))
	}
	if !s.online.Online() {
		return nil, s.fail(domain.NewNetworkError(domain.MsgOffline))
	}

	token, err := s.backend.Login(ctx, in.Username, in.Password)
	if err != nil {
		return nil, s.fail(err)
	}

	ttl := s.opts.TTL
	if in.Remember {
		ttl = s.opts.RememberTTL
	}
	store := session.Open(s.storage, session.NewID(), ttl)
	if err := store.SetToken(ctx, token); err != nil {
		return nil, s.fail(err)
	}
	if err := store.SetRemember(ctx, in.Remember); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist remember flag")
	}

	// The session is valid from here on; a failed lookup only degrades role
	// resolution to the token claim.
	user, err := s.backend.Me(ctx, token)
	if err != nil {
		metrics.WhoAmIFailuresTotal.Inc()
		s.log.Warn().Err(err).Str("username", in.Username).Msg("user lookup after login failed")
		user = nil
	} else if err := store.SetUser(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("username", in.Username).Msg("failed to cache user record")
	}

	role, roleKnown := authz.ResolveRole(ctx, store)
	redirect := authz.PostSignInRedirect(in.Next, role, roleKnown)

	metrics.SignInAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("username", in.Username).
		Str("role", string(role)).
		Str("redirect", redirect).
		Msg("signed in")

	return &SignInResult{Session: store, User: user, Role: role, Redirect: redirect}, nil
}

// SignOut clears the session. Calling it on a cleared session is a no-op.
func (s *SignInService) SignOut(ctx context.Context, store *session.Store) error {
	if store == nil {
		return nil
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	metrics.SessionsClearedTotal.WithLabelValues("signout").Inc()
	return nil
}

func (s *SignInService) fail(err error) error {
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		s.log.Error().Err(err).Msg("sign-in failed")
		apiErr = &domain.APIError{Kind: domain.KindServer, Message: domain.MsgServerError}
	}
	metrics.SignInAttemptsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
	return apiErr
}

// FocusField names the form input that should regain focus after err.
func FocusField(err error) string {
	if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Field != "" {
		return apiErr.Field
	}
	return "password"
}
