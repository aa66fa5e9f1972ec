package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/gatekit/authcore/pkg/auth"
	"github.com/gatekit/authcore/pkg/auth/api"
	"github.com/gatekit/authcore/pkg/config"
	"github.com/gatekit/authcore/pkg/csrf"
	"github.com/gatekit/authcore/pkg/devicecookie"
	"github.com/gatekit/authcore/pkg/lockout"
	"github.com/gatekit/authcore/pkg/logincounter"
	"github.com/gatekit/authcore/pkg/password"
	"github.com/gatekit/authcore/pkg/sessions"
	"github.com/gatekit/authcore/pkg/tokencodec"
	"github.com/gatekit/authcore/pkg/user"
	"github.com/gatekit/authcore/pkg/worker"
)

type Config struct {
	Host           string `env:"AUTH_HOST" env-default:"0.0.0.0"`
	Port           uint16 `env:"AUTH_PORT" env-default:"4000"`
	DatabaseConfig config.DatabaseConfig
}

func main() {
	godotenv.Load()

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read env config", "err", err)
		os.Exit(1)
	}

	bfpConfig := config.NewBruteforceConfigFromEnv()
	csrfConfig := config.NewCSRFConfigFromEnv()
	cookieConfig := config.NewCookieConfigFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		userRepo    user.Repository
		sessionRepo sessions.Repository
		lockoutRepo lockout.Repository
	)
	if cfg.DatabaseConfig.Host != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseConfig.ToDatabaseURL())
		if err != nil {
			slog.Error("Failed to create database pool", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		userRepo = user.NewPostgresRepository(pool)
		sessionRepo = sessions.NewPostgresRepository(pool)
		lockoutRepo = lockout.NewPostgresRepository(pool)
		slog.Info("Using Postgres repositories", "host", cfg.DatabaseConfig.Host)
	} else {
		userRepo = user.NewInMemRepository()
		sessionRepo = sessions.NewInMemRepository()
		lockoutRepo = lockout.NewInMemRepository()
		slog.Warn("No database configured, using in-memory repositories")
	}

	deviceCookies := devicecookie.NewManager(bfpConfig.SecretKey)
	csrfManager := csrf.NewManager(csrfConfig.SecretKey, csrfConfig.TokenTTL)
	loginCounter := logincounter.NewCounter(bfpConfig.MaxFailedLogins)
	sessionService := sessions.NewService(sessionRepo, cookieConfig.SessionTTL)

	loginService := auth.NewLoginService(
		deviceCookies,
		csrfManager,
		loginCounter,
		lockoutRepo,
		userRepo,
		sessionService,
		password.NewArgon2Hasher(),
		csrfConfig.Enabled,
		bfpConfig.LockoutPeriod,
	)

	// The counter reset bounds how long an attempt stays counted; lockouts
	// persist independently in the durable store.
	counterReset := worker.NewPeriodic("login-counter-reset", bfpConfig.LockoutPeriod,
		func(ctx context.Context) error {
			loginCounter.Reset()
			return nil
		})
	lockoutCleanup := worker.NewPeriodic("lockout-cleanup", bfpConfig.CleanupInterval,
		lockoutRepo.RemoveExpired)
	sessionCleanup := worker.NewPeriodic("session-cleanup", bfpConfig.CleanupInterval,
		sessionService.DeleteExpired)

	counterReset.Start(ctx)
	lockoutCleanup.Start(ctx)
	sessionCleanup.Start(ctx)

	handle := api.NewHandle(
		loginService,
		sessionService,
		csrfManager,
		tokencodec.NewCookieSetter(cookieConfig.HTTPOnly, cookieConfig.Secure),
		csrfConfig.Enabled,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if csrfConfig.Enabled {
		csrfMiddleware := csrf.NewMiddleware(csrfManager, "/auth/login", "/auth/csrf-token")
		r.Use(csrfMiddleware.Handler)
	}
	r.Route("/auth", handle.Routes)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "err", err)
	}

	counterReset.Stop()
	lockoutCleanup.Stop()
	sessionCleanup.Stop()
}
