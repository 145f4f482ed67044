package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api/handler"
	"github.com/dentedu/web-gateway/internal/core/service"
	"github.com/dentedu/web-gateway/internal/core/session"
	"github.com/dentedu/web-gateway/internal/devbackend"
	"github.com/dentedu/web-gateway/internal/infrastructure/backend"
	"github.com/dentedu/web-gateway/internal/infrastructure/db/memory"
)

const cookieName = "dentedu_session"

type alwaysOnline struct{}

func (alwaysOnline) Online() bool { return true }

type gateway struct {
	e       *echo.Echo
	storage *memory.SessionStorage
}

// newGateway wires the gateway against an in-process development backend.
func newGateway(t *testing.T) *gateway {
	t.Helper()
	log := zerolog.Nop()

	users := memory.NewUserRepository()
	auth := service.NewAuthService(users, "integration-secret", time.Hour)
	seeds, err := devbackend.ParseSeedUsers("std123:secret1:student,drsmith:secret1:doctor")
	if err != nil {
		t.Fatal(err)
	}
	if err := devbackend.Seed(context.Background(), auth, seeds, log); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(devbackend.NewRouter(auth, devbackend.Options{JWTSecret: "integration-secret", Log: log}))
	t.Cleanup(srv.Close)

	backendURL, _ := url.Parse(srv.URL)
	storage := memory.NewSessionStorage()
	flow := service.NewSignInService(backend.NewClient(srv.URL, time.Second, log), alwaysOnline{}, storage,
		service.SessionOptions{TTL: time.Hour, RememberTTL: 24 * time.Hour}, log)

	e := NewRouter(Deps{
		Storage:    storage,
		Flow:       flow,
		Online:     alwaysOnline{},
		BackendURL: backendURL,
		Cookie:     handler.CookieOptions{Name: cookieName, RememberMaxAge: 24 * time.Hour},
		SessionTTL: time.Hour,
		Checks:     map[string]handler.Check{"backend": handler.BackendCheck(alwaysOnline{})},
		Log:        log,
	})
	return &gateway{e: e, storage: storage}
}

func (g *gateway) do(method, path string, form url.Values, ck *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if ck != nil {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	g.e.ServeHTTP(rec, req)
	return rec
}

func (g *gateway) signIn(t *testing.T, username, next string) *http.Cookie {
	t.Helper()
	rec := g.do(http.MethodPost, "/signin", url.Values{"username": {username}, "password": {"secret1"}, "next": {next}}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("sign-in as %s: %d %s", username, rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestGateway_DeepLinkRoundTrip(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodGet, "/doctor/grading", nil, nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/signin?next=%2Fdoctor%2Fgrading" {
		t.Fatalf("anonymous: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = g.do(http.MethodPost, "/signin", url.Values{"username": {"drsmith"}, "password": {"secret1"}, "next": {"/doctor/grading"}}, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/doctor/grading" {
		t.Fatalf("sign-in: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	ck := rec.Result().Cookies()[0]

	rec = g.do(http.MethodGet, "/doctor/grading", nil, ck)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"page":"doctor-grading"`) {
		t.Fatalf("page: %d %s", rec.Code, rec.Body.String())
	}
}

func TestGateway_RoleMismatchAndLanding(t *testing.T) {
	g := newGateway(t)
	ck := g.signIn(t, "std123", "")

	rec := g.do(http.MethodGet, "/doctor/dashboard", nil, ck)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/student/dashboard" {
		t.Fatalf("mismatch: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if rec := g.do(http.MethodGet, "/announcements", nil, ck); rec.Code != http.StatusOK {
		t.Fatalf("open page: %d", rec.Code)
	}
}

func TestGateway_WrongPassword(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodPost, "/signin", url.Values{"username": {"std123"}, "password": {"wrong-pw"}}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password.") || !strings.Contains(rec.Body.String(), `"focus":"password"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("failed sign-in set a cookie")
	}
}

func TestGateway_SignOut(t *testing.T) {
	g := newGateway(t)
	ck := g.signIn(t, "std123", "")

	if rec := g.do(http.MethodPost, "/signout", nil, ck); rec.Code != http.StatusSeeOther {
		t.Fatalf("sign-out: %d", rec.Code)
	}
	rec := g.do(http.MethodGet, "/student/dashboard", nil, ck)
	if rec.Code != http.StatusFound || !strings.HasPrefix(rec.Header().Get("Location"), "/signin") {
		t.Fatalf("after sign-out: %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGateway_RememberSurvivesSignOut(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodPost, "/signin", url.Values{"username": {"std123"}, "password": {"secret1"}, "remember": {"on"}}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("sign-in: %d %s", rec.Code, rec.Body.String())
	}
	var ck *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			ck = c
		}
	}
	if ck == nil {
		t.Fatal("no session cookie")
	}

	rec = g.do(http.MethodPost, "/signout", nil, ck)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("sign-out: %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			t.Fatal("remembered session cookie was expired")
		}
	}

	rec = g.do(http.MethodGet, "/signin", nil, ck)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"remember":true`) {
		t.Fatalf("sign-in form after sign-out: %d %s", rec.Code, rec.Body.String())
	}
	if rec := g.do(http.MethodGet, "/student/dashboard", nil, ck); rec.Code != http.StatusFound {
		t.Fatalf("signed-out session still admitted: %d", rec.Code)
	}
}

func TestGateway_ProxyForwardsBearer(t *testing.T) {
	g := newGateway(t)
	ck := g.signIn(t, "drsmith", "")

	rec := g.do(http.MethodGet, "/api/auth/me", nil, ck)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"username":"drsmith"`) {
		t.Fatalf("proxy: %d %s", rec.Code, rec.Body.String())
	}
}

func TestGateway_ProxyUnauthorizedClearsSession(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()

	// Well-formed, so the guard lets it through; the backend rejects the signature.
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatal(err)
	}

	sid := session.NewID()
	s := session.Open(g.storage, sid, time.Hour)
	if err := s.SetToken(ctx, forged); err != nil {
		t.Fatal(err)
	}
	ck := &http.Cookie{Name: cookieName, Value: sid}

	rec := g.do(http.MethodGet, "/api/auth/me", nil, ck)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected backend 401, got %d", rec.Code)
	}
	if s.IsAuthed(ctx) {
		t.Fatal("session should be cleared after a backend 401")
	}
}

func TestGateway_Operations(t *testing.T) {
	g := newGateway(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := g.do(http.MethodGet, path, nil, nil); rec.Code != http.StatusOK {
			t.Errorf("%s: %d", path, rec.Code)
		}
	}
	if rec := g.do(http.MethodGet, "/api/anything", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous proxy call: %d", rec.Code)
	}
}
