// Command server runs the focusboard HTTP API and realtime feed.
//
// @title                       focusboard API
// @version                     1.0
// @description                 Tasks, notes and a realtime change feed for a single user's workspace.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/api"
	"github.com/focusboard/focusboard-api/internal/core/service"
	"github.com/focusboard/focusboard-api/internal/infrastructure/db/postgres"
	"github.com/focusboard/focusboard-api/internal/infrastructure/db/redis"
	"github.com/focusboard/focusboard-api/internal/infrastructure/realtime"
	"github.com/focusboard/focusboard-api/internal/pkg/config"
	"github.com/focusboard/focusboard-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "focusboard-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Postgres.URL, logger.Component("migrate")); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	hasher := service.NewPasswordHasher(cfg.BcryptCost)

	hub := realtime.NewHub(logger.Component("hub"))
	dispatcher := realtime.NewDispatcher(hub, cfg.Realtime.Workers, cfg.Realtime.QueueSize, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	users := postgres.NewUserRepository(pool)
	limiter := redis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	e := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(users, hasher, tokens, limiter, logger.Component("auth")),
		Users:    service.NewUserService(users, hasher, logger.Component("users")),
		Tasks:    service.NewTaskService(postgres.NewTaskRepository(pool), dispatcher, logger.Component("tasks")),
		Notes:    service.NewNoteService(postgres.NewNoteRepository(pool), dispatcher, logger.Component("notes")),
		Verifier: tokens,
		Realtime: realtime.NewHandler(hub, tokens, realtime.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			SendBuffer:     cfg.Realtime.SendBuffer,
		}, logger.Component("realtime")),
		DB:             pool,
		Redis:          rdb,
		Log:            logger.Component("http"),
		Debug:          !cfg.IsProduction(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Registerer:     prometheus.DefaultRegisterer,
		Gatherer:       prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
