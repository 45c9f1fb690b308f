// @title staffpoints API
// @version 1.0
// @description Staff points slips with bearer-token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/staffpoints/backend/internal/config"
	"github.com/staffpoints/backend/internal/db"
	"github.com/staffpoints/backend/internal/handler"
	"github.com/staffpoints/backend/internal/metrics"
	"github.com/staffpoints/backend/internal/service"
)

type backend interface {
	service.CredentialBackend
	service.StaffRepo
	service.SlipRepo
}

func main() {
	cfg := config.Load()
	log := newLogger(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ttl, err := time.ParseDuration(cfg.Auth.JWTTTL)
	if err != nil {
		return fmt.Errorf("%w: invalid JWT_TTL", service.ErrMisconfigured)
	}
	cost, err := strconv.Atoi(cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("%w: invalid BCRYPT_COST", service.ErrMisconfigured)
	}
	concurrency, err := strconv.Atoi(cfg.Auth.HashConcurrency)
	if err != nil {
		return fmt.Errorf("%w: invalid HASH_CONCURRENCY", service.ErrMisconfigured)
	}

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, ttl)
	if err != nil {
		return err
	}
	hasher := service.NewPasswordHasher(cost, concurrency)
	credentials := service.NewCredentialStore(store, hasher, log)

	changed, err := credentials.Bootstrap(ctx)
	if err != nil {
		log.WithError(err).Error("credential bootstrap failed, continuing with existing records")
	} else if changed > 0 {
		log.WithField("records", changed).Info("credential store updated")
	}

	staff := service.NewStaffService(store)
	router := handler.NewRouter(handler.Deps{
		Auth:           service.NewAuthService(credentials, hasher, tokens),
		Tokens:         tokens,
		Credentials:    credentials,
		Staff:          staff,
		Slips:          service.NewSlipService(store, staff),
		Metrics:        metrics.New(),
		Log:            log,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.Server.Addr, "backend": cfg.Store.Backend}).Info("server listening")
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openBackend(ctx context.Context, cfg config.Config) (backend, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return db.NewFiles(cfg.Store.DataDir), func() {}, nil
	case config.BackendMemory:
		return db.NewMemory(), func() {}, nil
	case config.BackendPostgres:
		pg, err := db.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown STORE_BACKEND %q", service.ErrMisconfigured, cfg.Store.Backend)
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if os.Getenv(gin.EnvGinMode) == "" && level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	return logger
}
