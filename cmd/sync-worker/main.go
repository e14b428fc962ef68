package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/amqp"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/config"
	applog "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/log"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/services"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets"
	gsheet "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets/google"
	mem "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets/memory"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/worker"
)

func main() {
	// Load .env for local development; containers set real env vars.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting sync-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Without a spreadsheet the worker still drains the queue, into an
	// in-memory sink. Useful for local development.
	var writer sheets.RecordWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewClient(context.Background(),
			cfg.GoogleSpreadsheetID, cfg.GoogleTransactionSheet, cfg.GoogleReportSheet)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = mem.New()
		logger.Info("Google Sheets disabled, exporting to memory store")
	}

	var consumer *amqp.Client
	if cfg.AMQPURL != "" {
		consumer, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, relying on queue polling", "error", err)
			consumer = nil
		} else {
			defer consumer.Close()
		}
	}

	processorConfig := services.DefaultSyncProcessorConfig()
	processorConfig.PollInterval = cfg.SyncInterval
	processorConfig.BatchSize = cfg.SyncBatchSize
	processor := services.NewSyncProcessor(repo, writer, processorConfig)

	syncWorker := worker.NewSyncWorker(consumer, processor)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := syncWorker.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Sync worker failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := syncWorker.Shutdown(shutdownCtx); err != nil {
		logger.Error("Sync worker shutdown error", "error", err)
	}
	logger.Info("Sync worker stopped gracefully")
}
