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

	lendhttp "github.com/aussiebroadwan/hwlend/internal/lending/http"
	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/postgres"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/sqlite"
	"github.com/aussiebroadwan/hwlend/pkg/cryptox"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application owns the store, services and HTTP server of a running instance.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	keys *Keys

	Accounts     *service.AccountService
	Sessions     *service.SessionService
	MFA          *service.MFAService
	Hardware     *service.HardwareService
	Projects     *service.ProjectService
	Inventory    *service.InventoryService
	Usage        *service.UsageService
	Archive      *service.ArchiveService // nil unless a bucket is configured
	housekeeping *service.HousekeepingService

	server *http.Server
}

// New opens the store, applies migrations and wires every service. It does
// not start listening; call Run for that.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "hwlend",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keys = keys

	if err := app.initServices(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.server.Handler }

// Logger returns the process logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

// Run serves HTTP and blocks until SIGINT/SIGTERM or a server failure.
func (app *Application) Run() error {
	app.housekeeping.Start()

	app.logger.Info("hwlend starting", "port", app.cfg.Port, "driver", app.cfg.DBDriver, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeeping.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown drains in-flight requests, stops housekeeping and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down hwlend...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeeping.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("hwlend stopped")
	return nil
}

// Close releases the store without serving. Used by the admin commands.
func (app *Application) Close() error {
	return app.db.Close()
}

func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DBDriver {
	case "sqlite", "":
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	case "postgres":
		if app.cfg.DatabaseURL == "" {
			return errors.New("HWLEND_DATABASE_URL is required for the postgres driver")
		}
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DBDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DBDriver)
	return nil
}

func (app *Application) initServices(ctx context.Context) error {
	attempts := app.cfg.MaxTxAttempts

	app.Accounts = &service.AccountService{
		Store:         app.db,
		Notifier:      service.LogNotifier{},
		ResetTokenTTL: app.cfg.ResetTokenTTL,
		MaxTxAttempts: attempts,
	}
	app.Sessions = &service.SessionService{
		Signer: app.keys.Signer,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.TokenTTL,
	}
	app.MFA = &service.MFAService{Store: app.db, Issuer: app.cfg.Issuer}
	app.Hardware = &service.HardwareService{Store: app.db}
	app.Projects = &service.ProjectService{Store: app.db, MaxTxAttempts: attempts}
	app.Inventory = &service.InventoryService{Store: app.db, MaxTxAttempts: attempts}
	app.Usage = &service.UsageService{Store: app.db}

	if app.cfg.ArchiveBucket != "" {
		client, err := service.NewS3Client(ctx, service.S3Config{
			Region:    app.cfg.ArchiveRegion,
			Endpoint:  app.cfg.ArchiveEndpoint,
			AccessKey: app.cfg.ArchiveAccess,
			SecretKey: app.cfg.ArchiveSecret,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize archive client: %w", err)
		}
		app.Archive = &service.ArchiveService{
			Store:  app.db,
			Client: client,
			Bucket: app.cfg.ArchiveBucket,
			Prefix: app.cfg.ArchivePrefix,
		}
		app.logger.Info("usage archiving enabled", "bucket", app.cfg.ArchiveBucket, "prefix", app.cfg.ArchivePrefix)
	}

	app.housekeeping = service.NewHousekeepingService(app.db, app.Archive, app.logger, app.cfg.HousekeepingInterval)
	return nil
}

func (app *Application) initHTTP() {
	router := lendhttp.NewRouter(app.keys.KeySet, app.keys.Verifier, BuildVersion, app.db, app.logger)

	router.AccountService = app.Accounts
	router.SessionService = app.Sessions
	router.MFAService = app.MFA
	router.HardwareService = app.Hardware
	router.ProjectService = app.Projects
	router.InventoryService = app.Inventory
	router.UsageService = app.Usage
	router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
