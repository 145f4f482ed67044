// Package session owns the per-browser authentication state: the bearer
// token, the cached user record and the remember-me hint.
//
// A Store is bound to one session ID and one storage driver. It never talks
// to the backend; token validity is enforced by the backend on every call.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
)

const (
	keyToken    = "access_token"
	keyRemember = "remember_me"
	keyUser     = "user"
)

// Store is the session context for one browser session.
type Store struct {
	storage ports.SessionStorage
	id      string
	ttl     time.Duration
}

// NewID returns a fresh random session identifier.
func NewID() string {
	return uuid.NewString()
}

// Open binds a Store to the given session ID. Values written through the
// store expire after ttl; a non-positive ttl means no expiry.
func Open(storage ports.SessionStorage, id string, ttl time.Duration) *Store {
	return &Store{storage: storage, id: id, ttl: ttl}
}

// ID returns the session identifier the store is bound to.
func (s *Store) ID() string {
	return s.id
}

// WithTTL returns a store for the same session whose writes use ttl.
func (s *Store) WithTTL(ttl time.Duration) *Store {
	return &Store{storage: s.storage, id: s.id, ttl: ttl}
}

func (s *Store) key(name string) string {
	return "session:" + s.id + ":" + name
}

// SetToken persists the bearer token, replacing any previous one.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.storage.Set(ctx, s.key(keyToken), token, s.ttl); err != nil {
		return fmt.Errorf("session: set token: %w", err)
	}
	return nil
}

// Token returns the persisted token, if any.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	if s.id == "" {
		return "", false, nil
	}
	tok, ok, err := s.storage.Get(ctx, s.key(keyToken))
	if err != nil {
		return "", false, fmt.Errorf("session: get token: %w", err)
	}
	if !ok || tok == "" {
		return "", false, nil
	}
	return tok, true, nil
}

// IsAuthed reports whether a token is present. Presence is the only local
// signal; a storage failure reads as signed out.
func (s *Store) IsAuthed(ctx context.Context) bool {
	_, ok, err := s.Token(ctx)
	return err == nil && ok
}

// SetUser caches the user record returned by the backend.
func (s *Store) SetUser(ctx context.Context, u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.storage.Set(ctx, s.key(keyUser), string(raw), s.ttl); err != nil {
		return fmt.Errorf("session: set user: %w", err)
	}
	return nil
}

// User returns the cached user record. A record that cannot be decoded is
// reported as absent.
func (s *Store) User(ctx context.Context) (*domain.User, bool, error) {
	if s.id == "" {
		return nil, false, nil
	}
	raw, ok, err := s.storage.Get(ctx, s.key(keyUser))
	if err != nil {
		return nil, false, fmt.Errorf("session: get user: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false, nil
	}
	return &u, true, nil
}

// SetRemember stores the remember-me hint.
func (s *Store) SetRemember(ctx context.Context, remember bool) error {
	v := "false"
	if remember {
		v = "true"
	}
	if err := s.storage.Set(ctx, s.key(keyRemember), v, s.ttl); err != nil {
		return fmt.Errorf("session: set remember: %w", err)
	}
	return nil
}

// Remember returns the remember-me hint; false when unset or unreadable.
func (s *Store) Remember(ctx context.Context) bool {
	if s.id == "" {
		return false
	}
	v, ok, err := s.storage.Get(ctx, s.key(keyRemember))
	return err == nil && ok && v == "true"
}

// Clear signs the session out: token and cached user are removed in a single
// storage call. Clearing an already cleared session is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if s.id == "" {
		return nil
	}
	if err := s.storage.Delete(ctx, s.key(keyToken), s.key(keyUser)); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
