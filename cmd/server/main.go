// Command server runs the time logging service: an HTTP API for recording
// work hours against services and projects, with ownership-scoped access and
// period summaries. Storage is Postgres when DATABASE_URL is set, otherwise
// an in-process store suitable for local development.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"worklog/internal/gatewaytoken"
	internalhttp "worklog/internal/http"
	"worklog/internal/platform/config"
	"worklog/internal/platform/httpserver"
	"worklog/internal/platform/logger"
	platformredis "worklog/internal/platform/redis"
	"worklog/internal/timelog"
	"worklog/internal/timelog/cache"
	timelogmetrics "worklog/internal/timelog/metrics"
	"worklog/internal/timelog/service"
	"worklog/internal/timelog/store"
	"worklog/internal/timelog/store/memory"
	"worklog/internal/timelog/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx := context.Background()

	timeLogStore, healthChecks, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(timelogmetrics.New()),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		// The cache is an optimization; run uncached rather than refuse to start.
		log.Warn("redis unavailable, summaries will not be cached", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithCache(cache.New(redisClient.Client, cache.DefaultTTL)))
		healthChecks = append(healthChecks, func() error {
			return redisClient.Health(ctx)
		})
		log.Info("summary cache enabled")
	}

	svc, err := timelog.NewService(timeLogStore, opts...)
	if err != nil {
		return err
	}

	tokens := gatewaytoken.NewService(cfg.JWTSigningKey, "worklog", "worklog-api")
	router := internalhttp.NewRouter(internalhttp.Deps{
		Logger:         log,
		TimeLogHandler: timelog.NewHandler(svc, log),
		TokenValidator: gatewaytoken.NewServiceAdapter(tokens),
		HealthChecks:   healthChecks,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting worklog server", "addr", cfg.Addr, "env", cfg.Env)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildStore selects the persistence backend and runs dev seeding. The
// returned cleanup closes whatever the backend opened.
func buildStore(ctx context.Context, cfg config.Server, log *slog.Logger) (service.Store, []func() error, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("no DATABASE_URL set, using in-memory store")
		memStore := memory.New()
		if cfg.SeedSampleData {
			if err := store.SeedSampleLogs(ctx, memStore, log); err != nil {
				return nil, nil, nil, err
			}
		}
		return memStore, nil, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	pgStore := postgres.New(db)
	if err := pgStore.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	if cfg.SeedSampleData {
		if err := store.SeedSampleLogs(ctx, pgStore, log); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
	}

	log.Info("using postgres store")
	checks := []func() error{db.Ping}
	return pgStore, checks, func() { db.Close() }, nil
}
