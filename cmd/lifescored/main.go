// Command lifescored is the lifescore quiz service.
// It serves the scoring API, captures leads with their submissions, exports
// reports and notifies the CRM webhook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lifescore/lifescore/internal/api"
	"github.com/lifescore/lifescore/internal/intake"
	"github.com/lifescore/lifescore/internal/leads"
	"github.com/lifescore/lifescore/internal/logging"
	"github.com/lifescore/lifescore/internal/platform"
	"github.com/lifescore/lifescore/internal/webhook"
	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/config"
	"github.com/lifescore/lifescore/pkg/scoring"
)

func main() {
	os.Exit(serve(os.Args[1:], os.Stderr))
}

// serve runs the service and returns the process exit code. Deferred
// cleanup completes before main exits.
func serve(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("lifescored", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file (default: .lifescore/config.yaml, searched upward)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	path := *configPath
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(cwd)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("lifescored stopped", zap.Error(err))
		return 1
	}
	return 0
}

// app holds the wired service and the resources to release on shutdown.
type app struct {
	db       *platform.DB
	storage  intake.StorageClient
	notifier *webhook.Notifier
	handler  http.Handler
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, err := platform.Open(ctx, platform.Driver(cfg.Database.Driver), cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Migrate {
		if err := platform.AutoMigrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating: %w", err)
		}
	}

	storage, err := intake.OpenStorage(ctx, cfg.Storage)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening report storage: %w", err)
	}

	notifier := webhook.NewNotifier(webhook.Options{
		URL:     cfg.Webhook.URL,
		Secret:  cfg.Webhook.Secret,
		Timeout: time.Duration(cfg.Webhook.Timeout) * time.Second,
		Logger:  logger.Named("webhook"),
	})
	if !notifier.Enabled() {
		logger.Info("webhook disabled: no URL configured")
	}

	opts := []scoring.Option{scoring.WithLogger(logger.Named("scoring"))}
	if cfg.Scoring.Seed != 0 {
		opts = append(opts, scoring.WithPicker(scoring.NewPicker(cfg.Scoring.Seed)))
	}
	adult := scoring.NewAdultEngine(opts...)
	child := scoring.NewChildEngine(opts...)

	leadStore := leads.NewService(db)
	intakeSvc := intake.NewService(leadStore, storage, notifier, adult, child, logger.Named("intake")).
		WithSource(cfg.Webhook.Source)

	var auth *api.Auth
	if cfg.Auth.JWTSecret != "" {
		auth = api.NewAuth(cfg.Auth.JWTSecret)
	} else {
		logger.Info("admin API disabled: no JWT secret configured")
	}

	handler := api.NewHandler(api.Options{
		Catalog:     catalog.Default(),
		Adult:       adult,
		Child:       child,
		Intake:      intakeSvc,
		Leads:       leadStore,
		Cache:       api.NewReportCache(cfg.Server.ReportCacheSize),
		Auth:        auth,
		DB:          db,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	return &app{db: db, storage: storage, notifier: notifier, handler: handler.Routes()}, nil
}

// Close drains pending webhook deliveries, then releases storage and the
// database.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if err := a.notifier.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("draining webhooks: %w", err))
	}
	if c, ok := a.storage.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing storage: %w", err))
		}
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}
	return errors.Join(errs...)
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting lifescored",
			zap.String("addr", srv.Addr),
			zap.String("db", cfg.Database.Driver),
			zap.String("storage", cfg.Storage.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown: %w", err))
		}
		if err := a.Close(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
