package api

import (
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dentedu/web-gateway/docs"
	"github.com/dentedu/web-gateway/internal/api/handler"
	"github.com/dentedu/web-gateway/internal/api/middleware"
	"github.com/dentedu/web-gateway/internal/core/domain"
	"github.com/dentedu/web-gateway/internal/core/ports"
)

// Deps are the collaborators the gateway router wires together.
type Deps struct {
	Storage    ports.SessionStorage
	Flow       handler.SignInFlow
	Online     ports.Connectivity
	BackendURL *url.URL
	Cookie     handler.CookieOptions
	SessionTTL time.Duration
	// Checks back /health/ready, keyed by dependency name.
	Checks map[string]handler.Check
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Session(d.Storage, d.Cookie.Name, d.SessionTTL))

	// --- Public routes ---
	sessionHandler := handler.NewSessionHandler(d.Flow, d.Online, d.Cookie, d.Log)

	e.GET(domain.RouteHome, sessionHandler.Home)
	e.GET(domain.RouteSignIn, sessionHandler.SignInForm)
	e.POST(domain.RouteSignIn, sessionHandler.SignIn)
	e.GET(domain.RouteSignUp, sessionHandler.SignUpForm)
	e.POST(domain.RouteSignUp, sessionHandler.SignUp)
	e.POST("/signout", sessionHandler.SignOut)
	e.GET("/session", sessionHandler.Current)

	// --- Protected pages ---
	for _, p := range handler.Pages {
		e.GET(p.Path, handler.Page(p), middleware.Guard(p.Roles...))
	}

	// --- Backend proxy ---
	if d.BackendURL != nil {
		apiGroup := e.Group("/api", middleware.APIGuard(d.Log), middleware.BackendBearer())
		apiGroup.Use(echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
			Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
				{Name: "backend", URL: d.BackendURL},
			}),
			Rewrite: map[string]string{
				"/api/*": "/$1",
			},
			ModifyResponse: middleware.ClearOnUnauthorized(d.Log),
		}))
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
