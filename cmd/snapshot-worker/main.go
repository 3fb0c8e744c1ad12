package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sharptoken/internal/amqp"
	"sharptoken/internal/config"
	applog "sharptoken/internal/log"
	"sharptoken/internal/services"
	"sharptoken/internal/storage"
	"sharptoken/internal/workbook"
	gsheet "sharptoken/internal/workbook/google"
	mem "sharptoken/internal/workbook/memory"
)

// snapshot-worker re-reads the workbook on an interval, recomputes the
// dashboard, appends a snapshot to the SQLite history and publishes a
// refresh notification over AMQP.
func main() {
	_ = godotenv.Load()

	logger := applog.New(slog.LevelInfo).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting snapshot-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.SQLiteDBPath == "" {
		logger.Error("SQLITE_DB_PATH is required for the snapshot worker")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var source workbook.TableReader
	switch cfg.WorkbookBackend {
	case "sheets":
		cli, err := gsheet.New(ctx, cfg.SpreadsheetID)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets workbook", applog.FieldError, err)
			os.Exit(1)
		}
		source = cli
	default:
		source = mem.NewFromDir(cfg.DataDir)
	}

	store, err := storage.NewSnapshotRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open snapshot store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// AMQP is optional: without it the worker still snapshots, it just
	// notifies nobody.
	var bus *amqp.Client
	if cfg.AMQPURL != "" {
		bus, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer bus.Close()
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	svc := services.NewReportService(source, store, bus, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	refresh := func() {
		refreshCtx, refreshCancel := context.WithTimeout(ctx, 2*time.Minute)
		defer refreshCancel()
		if _, err := svc.Refresh(refreshCtx); err != nil {
			logger.Error("Refresh failed", applog.FieldError, err)
		}
	}

	// One refresh immediately, then on the interval.
	refresh()

	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	logger.Info("Worker running", applog.FieldInterval, cfg.RefreshInterval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker stopped gracefully")
			return
		case <-ticker.C:
			refresh()
		}
	}
}
