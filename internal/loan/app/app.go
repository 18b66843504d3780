// Package app wires configuration, storage, services, and the HTTP server
// into a runnable loandesk instance.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/madivinecapital/loandesk/internal/loan/gateway/moncash"
	httpapi "github.com/madivinecapital/loandesk/internal/loan/http"
	"github.com/madivinecapital/loandesk/internal/loan/intent"
	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/internal/loan/store"
	"github.com/madivinecapital/loandesk/internal/loan/store/drivers/sqlite"
	"github.com/madivinecapital/loandesk/pkg/jwtx"
	"github.com/madivinecapital/loandesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the loandesk service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	intents intent.Store
	signer  *jwtx.Signer

	// Services
	applicationService *service.ApplicationService
	authService        *service.AuthService
	checkoutService    *service.CheckoutService
	setupService       *service.SetupService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "loandesk",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initIntents(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	// Session keys are ephemeral: a restart logs every admin out, which is
	// acceptable for a small review console.
	signer, err := jwtx.NewEphemeralSigner("loandesk-" + BuildVersion)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.signer = signer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("loandesk starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down loandesk...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.intents.Close(); err != nil {
		app.logger.Error("error closing pending-payment store", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("loandesk stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initIntents connects the redis-backed pending-payment store.
func (app *Application) initIntents() error {
	client := redis.NewClient(&redis.Options{
		Addr: app.cfg.RedisAddr,
		DB:   app.cfg.RedisDB,
	})

	intents := intent.NewRedisStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := intents.Ping(ctx); err != nil {
		_ = intents.Close()
		return fmt.Errorf("failed to reach redis at %s: %w", app.cfg.RedisAddr, err)
	}

	app.intents = intents
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.applicationService = &service.ApplicationService{
		Store:  app.db,
		Logger: app.logger,
	}

	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		Logger:     app.logger,
		SessionTTL: app.cfg.SessionTTL,
		TOTPIssuer: "loandesk",
	}

	app.checkoutService = &service.CheckoutService{
		Applications: app.applicationService,
		Intents:      app.intents,
		Gateway: moncash.NewClient(moncash.Config{
			BaseURL:      app.cfg.MonCashBaseURL,
			ClientID:     app.cfg.MonCashClientID,
			ClientSecret: app.cfg.MonCashClientSecret,
		}),
		Logger:    app.logger,
		FeeHTG:    app.cfg.AnalysisFeeHTG,
		IntentTTL: app.cfg.CheckoutTTL,
	}

	app.setupService = &service.SetupService{
		Store:      app.db,
		SetupToken: app.cfg.SetupToken,
		Logger:     app.logger,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer.Verifier(app.cfg.Issuer),
		BuildVersion,
		app.db,
		app.intents,
		app.logger,
	)

	// Wire services to router
	router.ApplicationService = app.applicationService
	router.AuthService = app.authService
	router.CheckoutService = app.checkoutService
	router.SetupService = app.setupService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
