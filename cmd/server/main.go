package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/config"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/database"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/logging"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/scheduler"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/secure"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/service"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/version"
)

const snapshotJob = "report-snapshots"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // Sync fails on stdout in some terminals
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if dir := filepath.Dir(cfg.Database.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	schemaVersion, err := database.Migrate(context.Background(), db)
	if err != nil {
		return err
	}
	logger.Info("connected to database",
		zap.String("path", cfg.Database.Path),
		zap.Int64("schema_version", schemaVersion),
		zap.String("app_version", version.Version),
	)

	sealer, err := newSealer(cfg.Security.ResolutionKey, logger)
	if err != nil {
		return err
	}

	// Create repositories
	clientRepo := repository.NewClientRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	alertRepo := repository.NewAlertRepository(db, sealer)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	loc := cfg.Report.Location
	reportService := service.NewReportService(transactionRepo, alertRepo, clientRepo, loc)
	snapshotService := service.NewSnapshotService(clientRepo, snapshotRepo, reportService, logger)
	services := api.Services{
		System:      service.NewSystemService(db),
		Client:      service.NewClientService(clientRepo),
		Transaction: service.NewTransactionService(transactionRepo, clientRepo, loc),
		Alert:       service.NewAlertService(alertRepo, transactionRepo, logger),
		Report:      reportService,
		Snapshot:    snapshotService,
	}

	jobs := scheduler.New(logger)
	if err := jobs.Add(snapshotJob, cfg.Scheduler.SnapshotSchedule, snapshotService.RefreshAll); err != nil {
		return err
	}
	jobs.Start()
	go jobs.RunNow(snapshotJob, snapshotService.RefreshAll)

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(services, cfg, logger),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.String("timezone", cfg.Report.Timezone))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := jobs.Stop(ctx); err != nil {
		logger.Warn("scheduler did not stop in time", zap.Error(err))
	}

	logger.Info("server exited")
	return nil
}

// newSealer builds the resolution-note sealer from a comma separated key list,
// newest key first. Without keys an ephemeral one is generated, which makes
// notes written by this process unreadable after a restart.
func newSealer(keys string, logger *zap.Logger) (*secure.Sealer, error) {
	if strings.TrimSpace(keys) == "" {
		key, err := secure.GenerateKey()
		if err != nil {
			return nil, err
		}
		logger.Warn("RESOLUTION_KEY is not set; using an ephemeral key, resolution notes will not survive a restart")
		return secure.NewSealer(key)
	}

	var parts []string
	for _, k := range strings.Split(keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			parts = append(parts, k)
		}
	}
	return secure.NewSealer(parts...)
}
