package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	httpapi "github.com/readspacehq/readspace/internal/profiles/http"
	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/internal/profiles/store/drivers/sqlite"
	"github.com/readspacehq/readspace/pkg/cryptox"
	"github.com/readspacehq/readspace/pkg/jwtx"
	"github.com/readspacehq/readspace/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the profiles service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	signer  *jwtx.Signer
	metrics *httpapi.Metrics

	// Services
	tokenService        *service.TokenService
	accountService      *service.AccountService
	signupService       *service.SignupService
	profileService      *service.ProfileService
	documentService     *service.DocumentService
	backfillService     *service.BackfillService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "profiles-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := InitSigningKey(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.signer = signer

	app.metrics = httpapi.NewMetrics(prometheus.DefaultRegisterer)
	app.initServices()

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("profiles service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down profiles service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("profiles service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initServices initializes all business logic services
func (app *Application) initServices() {
	ttl := app.cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	app.tokenService = &service.TokenService{
		Signer:    app.signer,
		Store:     app.db,
		Issuer:    app.cfg.Issuer,
		AccessTTL: ttl,
	}

	app.accountService = &service.AccountService{Store: app.db}
	app.signupService = &service.SignupService{
		Store:            app.db,
		OnProfilePending: app.metrics.CountProfilePending,
	}
	app.profileService = &service.ProfileService{Store: app.db}

	ownership := &service.OwnershipService{Store: app.db}
	app.documentService = &service.DocumentService{Store: app.db, Ownership: ownership}
	app.backfillService = &service.BackfillService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.NotificationRetention,
	)
}

// seedAdmin guarantees the configured admin account exists. Signup over HTTP
// refuses the admin role, so this is the only path that creates one.
func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.SeedAdminEmail == "" {
		return nil
	}

	account, err := app.db.Accounts().GetAccountByEmail(ctx, app.cfg.SeedAdminEmail)
	switch {
	case err == nil:
		if account.Role != domain.RoleAdmin {
			if err := app.db.Accounts().SetRole(ctx, account.ID, domain.RoleAdmin); err != nil {
				return err
			}
			app.logger.Info("existing account promoted to admin", "email", app.cfg.SeedAdminEmail)
		}
		return nil

	case errors.Is(err, store.ErrNotFound):
		password := app.cfg.SeedAdminPassword
		if password == "" {
			generated, err := cryptox.GeneratePassword()
			if err != nil {
				return err
			}
			password = generated
			app.logger.Info("generated admin password, change it after first login",
				"email", app.cfg.SeedAdminEmail, "password", password)
		}

		_, outcome, err := app.signupService.Signup(ctx, app.cfg.SeedAdminEmail, "Admin", password, domain.RoleAdmin)
		if err != nil {
			return err
		}
		app.logger.Info("admin account seeded", "email", app.cfg.SeedAdminEmail, "outcome", string(outcome))
		return nil

	default:
		return err
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.signer.Verifier(app.cfg.Issuer),
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.AccountService = app.accountService
	router.SignupService = app.signupService
	router.ProfileService = app.profileService
	router.DocumentService = app.documentService
	router.BackfillService = app.backfillService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
