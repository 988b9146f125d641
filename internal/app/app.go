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

	httpapi "github.com/mauriciosalazarsh/anuncia/internal/http"
	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/internal/session"
	"github.com/mauriciosalazarsh/anuncia/internal/store"
	"github.com/mauriciosalazarsh/anuncia/internal/store/drivers/sqlite"
	"github.com/mauriciosalazarsh/anuncia/pkg/jwtx"
	"github.com/mauriciosalazarsh/anuncia/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the service together: sqlite store, redis session
// store, token signer/verifier, services, router and HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sessions session.Store

	authService     *service.AuthService
	userService     *service.UserService
	productService  *service.ProductService
	documentService *service.DocumentService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. Both
// backing stores are reached before this returns; a service that cannot
// authenticate anyone should fail at startup, not at first login.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "anuncia",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessionStore(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.sessions.Close()
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("anuncia service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully stops the HTTP server, then closes the session store
// and the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down anuncia service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("anuncia service stopped")
	return nil
}

// initDatabase opens the sqlite store and applies migrations.
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

// initSessionStore connects to redis; NewRedisStore pings before returning.
func (app *Application) initSessionStore(ctx context.Context) error {
	sessions, err := session.NewRedisStore(ctx, app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	app.sessions = sessions

	app.logger.Info("session store connected", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initServices() error {
	secret := []byte(app.cfg.SecretKey)

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	verifier, err := jwtx.NewVerifierHS256(secret, app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.authService = &service.AuthService{
		Store:      app.db,
		Sessions:   app.sessions,
		Signer:     signer,
		Verifier:   verifier,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}

	app.userService = &service.UserService{Store: app.db}
	app.productService = &service.ProductService{Store: app.db}
	app.documentService = &service.DocumentService{Store: app.db}

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.Env == "prod", // Secure cookies outside of local dev
		app.db,
		app.sessions,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.ProductService = app.productService
	router.DocumentService = app.documentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
