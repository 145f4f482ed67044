// Command devbackend serves the authentication endpoints of the REST backend
// for local development against the gateway.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dentedu/web-gateway/internal/core/ports"
	"github.com/dentedu/web-gateway/internal/core/service"
	"github.com/dentedu/web-gateway/internal/devbackend"
	"github.com/dentedu/web-gateway/internal/infrastructure/db/memory"
	mongostore "github.com/dentedu/web-gateway/internal/infrastructure/db/mongo"
	"github.com/dentedu/web-gateway/internal/pkg/config"
	"github.com/dentedu/web-gateway/pkg/logger"
)

func main() {
	cfg := config.LoadDevBackend()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "devbackend",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo ports.UserRepository
	switch cfg.UsersDriver {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "dentedu-devbackend",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		users := mongostore.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create user indexes")
		}
		repo = users
	default:
		repo = memory.NewUserRepository()
	}

	authService := service.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)

	seeds, err := devbackend.ParseSeedUsers(cfg.SeedUsers)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SEED_USERS")
	}
	if err := devbackend.Seed(ctx, authService, seeds, logger.Component("seed")); err != nil {
		log.Fatal().Err(err).Msg("failed to seed users")
	}

	e := devbackend.NewRouter(authService, devbackend.Options{
		JWTSecret:       cfg.JWTSecret,
		LoginRatePerMin: cfg.LoginRatePerMin,
		Log:             log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("users", cfg.UsersDriver).Msg("devbackend listening")
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
}
