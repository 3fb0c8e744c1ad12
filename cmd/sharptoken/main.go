package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sharptoken/internal/config"
	apphttp "sharptoken/internal/http"
	applog "sharptoken/internal/log"
	"sharptoken/internal/services"
	"sharptoken/internal/storage"
	"sharptoken/internal/workbook"
	gsheet "sharptoken/internal/workbook/google"
	mem "sharptoken/internal/workbook/memory"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(slog.LevelInfo)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
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
		logger.Info("Initialized Google Sheets workbook", applog.FieldBackend, cfg.WorkbookBackend)
	default:
		source = mem.NewFromDir(cfg.DataDir)
		logger.Info("Initialized memory workbook", applog.FieldBackend, cfg.WorkbookBackend, "data_dir", cfg.DataDir)
	}

	var store *storage.SnapshotRepository
	if cfg.SQLiteDBPath != "" {
		var err error
		store, err = storage.NewSnapshotRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open snapshot store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer store.Close()
	}

	svc := services.NewReportService(source, store, nil, logger)

	// The whole pipeline runs once, synchronously, before the server accepts
	// traffic. A missing domain table aborts here: no partial dashboard.
	dashboard, err := svc.BuildDashboard(ctx)
	if err != nil {
		logger.Error("Failed to build dashboard", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Dashboard assembled", "charts", len(dashboard.Charts))

	srv := apphttp.NewServer(":"+cfg.Port, dashboard, svc)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting sharptoken server", applog.FieldPort, cfg.Port, applog.FieldBackend, cfg.WorkbookBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, applog.FieldPort, cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
