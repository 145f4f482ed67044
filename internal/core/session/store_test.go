package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/infrastructure/db/memory"
)

// countingStorage wraps memory storage and records Delete calls.
type countingStorage struct {
	*memory.SessionStorage
	deletes [][]string
}

func (s *countingStorage) Delete(ctx context.Context, keys ...string) error {
	s.deletes = append(s.deletes, keys)
	return s.SessionStorage.Delete(ctx, keys...)
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage down")
}
func (failingStorage) Set(context.Context, string, string, time.Duration) error {
	return errors.New("storage down")
}
func (failingStorage) Delete(context.Context, ...string) error { return errors.New("storage down") }

func TestStore_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Open(memory.NewSessionStorage(), NewID(), time.Hour)

	if s.IsAuthed(ctx) {
		t.Fatal("fresh session should not be authenticated")
	}
	if err := s.SetToken(ctx, "tok-1"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := s.SetToken(ctx, "tok-2"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	tok, ok, err := s.Token(ctx)
	if err != nil || !ok || tok != "tok-2" {
		t.Fatalf("Token() = (%q, %v, %v), want (tok-2, true, nil)", tok, ok, err)
	}
	if !s.IsAuthed(ctx) {
		t.Fatal("IsAuthed should be true once a token is stored")
	}
}

func TestStore_TokenIsNotValidated(t *testing.T) {
	ctx := context.Background()
	s := Open(memory.NewSessionStorage(), NewID(), time.Hour)

	if err := s.SetToken(ctx, "definitely not a jwt"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if !s.IsAuthed(ctx) {
		t.Fatal("presence alone should mark the session authenticated")
	}
}

func TestStore_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Open(memory.NewSessionStorage(), NewID(), time.Hour)

	in := &domain.User{ID: "7", Username: "drsmith", Email: "smith@example.com", Role: domain.RoleDoctor, DoctorName: "Dr. Smith"}
	if err := s.SetUser(ctx, in); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	got, ok, err := s.User(ctx)
	if err != nil || !ok {
		t.Fatalf("User() = (%v, %v, %v)", got, ok, err)
	}
	if got.ID != "7" || got.Username != "drsmith" || got.Role != domain.RoleDoctor || got.DoctorName != "Dr. Smith" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestStore_CorruptUserReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewSessionStorage()
	s := Open(storage, "abc", time.Hour)

	if err := storage.Set(ctx, "session:abc:user", "{not json", time.Hour); err != nil {
		t.Fatal(err)
	}
	u, ok, err := s.User(ctx)
	if err != nil || ok || u != nil {
		t.Fatalf("User() = (%v, %v, %v), want absent", u, ok, err)
	}
}

func TestStore_ClearRemovesTokenAndUserInOneCall(t *testing.T) {
	ctx := context.Background()
	storage := &countingStorage{SessionStorage: memory.NewSessionStorage()}
	s := Open(storage, "sid", time.Hour)

	_ = s.SetToken(ctx, "tok")
	_ = s.SetUser(ctx, &domain.User{ID: "1", Username: "std123", Role: domain.RoleStudent})
	_ = s.SetRemember(ctx, true)

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(storage.deletes) != 1 || len(storage.deletes[0]) != 2 {
		t.Fatalf("expected one Delete with two keys, got %v", storage.deletes)
	}
	if s.IsAuthed(ctx) {
		t.Error("token should be gone")
	}
	if _, ok, _ := s.User(ctx); ok {
		t.Error("user should be gone")
	}
	if !s.Remember(ctx) {
		t.Error("remember flag should survive sign-out")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if s.IsAuthed(ctx) {
		t.Error("second Clear changed state")
	}
}

func TestStore_EmptyIDIsSignedOut(t *testing.T) {
	ctx := context.Background()
	s := Open(memory.NewSessionStorage(), "", time.Hour)

	if s.IsAuthed(ctx) || s.Remember(ctx) {
		t.Fatal("a store without an ID must read as signed out")
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty ID: %v", err)
	}
}

func TestStore_StorageFailureReadsAsSignedOut(t *testing.T) {
	s := Open(failingStorage{}, "sid", time.Hour)
	if s.IsAuthed(context.Background()) {
		t.Fatal("storage failure should read as signed out")
	}
	if _, _, err := s.Token(context.Background()); err == nil {
		t.Fatal("Token should surface the storage error")
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewSessionStorage()
	a := Open(storage, NewID(), time.Hour)
	b := Open(storage, NewID(), time.Hour)

	_ = a.SetToken(ctx, "a-token")
	if b.IsAuthed(ctx) {
		t.Fatal("session b sees session a's token")
	}
}

func TestContext_RoundTrip(t *testing.T) {
	s := Open(memory.NewSessionStorage(), "sid", time.Hour)
	got, ok := FromContext(NewContext(context.Background(), s))
	if !ok || got != s {
		t.Fatal("store not carried by context")
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("empty context should carry no store")
	}
}
