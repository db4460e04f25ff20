package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iudanet/futbol/internal/config"
	"github.com/iudanet/futbol/internal/server/credentials"
	"github.com/iudanet/futbol/internal/server/handlers"
	"github.com/iudanet/futbol/internal/server/middleware"
	"github.com/iudanet/futbol/internal/server/router"
	"github.com/iudanet/futbol/internal/server/session"
	"github.com/iudanet/futbol/internal/server/storage"
	"github.com/iudanet/futbol/internal/server/storage/postgres"
	"github.com/iudanet/futbol/internal/server/storage/sqlite"
	"github.com/iudanet/futbol/internal/server/token"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 15 * time.Second

// backend объединяет все интерфейсы хранилища, нужные серверу
type backend interface {
	storage.UserStorage
	storage.MatchStorage
	storage.Pinger
	Close() error
}

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	configFile := flag.String("config", os.Getenv("FUTBOL_CONFIG"), "Path to config file (yaml, json or toml)")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "futbol server: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", slog.Any("error", err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStorage(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to open storage", slog.String("driver", cfg.Database.Driver), slog.Any("error", err))
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close storage", slog.Any("error", err))
		}
	}()

	handler, err := buildHandler(logger, cfg, db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Futbol server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", Version),
			slog.String("driver", cfg.Database.Driver),
			slog.Bool("production", cfg.Server.Production),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server failed", slog.Any("error", err))
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.Any("error", err))
		return err
	}

	logger.Info("Server stopped")
	return nil
}

func buildHandler(logger *slog.Logger, cfg *config.Config, db backend) (http.Handler, error) {
	handlers.Version = Version

	tokenConfig := token.Config{
		Key:            cfg.JWT.Key,
		Issuer:         cfg.JWT.Issuer,
		Audience:       cfg.JWT.Audience,
		ExpiresMinutes: cfg.JWT.ExpiresMinutes,
	}
	tokens := token.NewService(logger)
	transport := session.NewTransport(cfg.Server.Production, tokens.Expiry(tokenConfig))
	creds := credentials.NewService(logger, db)

	authHandler := handlers.NewAuthHandler(logger, creds, tokens, tokenConfig, transport)

	rateLimit, err := middleware.NewIPRateLimiter(logger, cfg.RateLimit.Auth)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit: %w", err)
	}

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = middleware.NewMetrics(reg)
		authHandler.WithLoginObserver(metrics.RecordLogin)
	}

	return router.New(router.Config{
		Logger:        logger,
		AuthHandler:   authHandler,
		MatchHandler:  handlers.NewMatchHandler(logger, db),
		HealthHandler: handlers.NewHealthHandler(logger, db),
		RequireAuth:   middleware.AuthMiddleware(logger, tokens, tokenConfig),
		Secure:        middleware.NewSecure(middleware.SecureOptions(cfg.Server.Production)),
		AuthRateLimit: rateLimit,
		Metrics:       metrics,
		CORSOrigins:   cfg.CORS.AllowedOrigins,
	}), nil
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig) (backend, error) {
	if cfg.Driver == config.DriverPostgres {
		pg, err := postgres.New(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	lite, err := sqlite.New(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func printVersion() {
	fmt.Printf("Futbol Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
