// @title        DentEdu Web Gateway
// @version      1.0
// @description  Session, sign-in and route guard gateway for the dental education platform.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api"
	"github.com/dentedu/web-gateway/internal/api/handler"
	"github.com/dentedu/web-gateway/internal/core/ports"
	"github.com/dentedu/web-gateway/internal/core/service"
	"github.com/dentedu/web-gateway/internal/infrastructure/backend"
	"github.com/dentedu/web-gateway/internal/infrastructure/connectivity"
	"github.com/dentedu/web-gateway/internal/infrastructure/db/memory"
	mongostore "github.com/dentedu/web-gateway/internal/infrastructure/db/mongo"
	redisstore "github.com/dentedu/web-gateway/internal/infrastructure/db/redis"
	"github.com/dentedu/web-gateway/internal/pkg/config"
	"github.com/dentedu/web-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "gateway",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backendURL, err := url.Parse(cfg.Backend.URL)
	if err != nil || backendURL.Scheme == "" || backendURL.Host == "" {
		log.Fatal().Str("backend_url", cfg.Backend.URL).Msg("invalid BACKEND_URL")
	}

	storage, checks, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Session.Driver).Msg("failed to open session storage")
	}
	defer closeStorage()

	monitor := connectivity.NewMonitor(cfg.Backend.URL, cfg.Backend.ConnectivityInterval, logger.Component("connectivity"))
	monitor.Start(ctx)
	checks["backend"] = handler.BackendCheck(monitor)

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger.Component("backend_client"))
	signIn := service.NewSignInService(client, monitor, storage, service.SessionOptions{
		TTL:         cfg.Session.TTL,
		RememberTTL: cfg.Session.RememberTTL,
	}, logger.Component("signin"))

	e := api.NewRouter(api.Deps{
		Storage:    storage,
		Flow:       signIn,
		Online:     monitor,
		BackendURL: backendURL,
		Cookie: handler.CookieOptions{
			Name:           cfg.Session.CookieName,
			Secure:         cfg.Session.CookieSecure,
			RememberMaxAge: cfg.Session.RememberTTL,
		},
		SessionTTL: cfg.Session.TTL,
		Checks:     checks,
		Log:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.URL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("gateway stopped")
}

// openStorage connects the configured session driver and returns the
// readiness checks it contributes.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStorage, map[string]handler.Check, func(), error) {
	checks := map[string]handler.Check{}

	switch cfg.Session.Driver {
	case "redis":
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		checks["redis"] = handler.RedisCheck(rdb)
		return redisstore.NewSessionStorage(rdb), checks, func() { _ = rdb.Close() }, nil

	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "dentedu-gateway",
		})
		if err != nil {
			return nil, nil, nil, err
		}
		storage := mongostore.NewSessionStorage(db)
		if err := storage.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, nil, err
		}
		checks["mongodb"] = handler.MongoCheck(db)
		return storage, checks, func() { _ = client.Disconnect(context.Background()) }, nil
	}

	storage := memory.NewSessionStorage()
	go storage.Run(ctx, time.Minute)
	log.Warn().Msg("using in-memory session storage; sessions are lost on restart")
	return storage, checks, func() {}, nil
}
