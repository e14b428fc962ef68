package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/amqp"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/cache"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/config"
	apphttp "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/http"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/integrations/quotes"
	applog "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/log"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/services"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets"
	gsheet "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets/google"
	mem "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets/memory"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

func main() {
	// Load .env for local development; containers set real env vars.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting API server")

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

	// AMQP is optional: without it, sync rows wait for the worker's poll
	// ticker instead of being picked up immediately.
	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without notifications", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
		}
	}

	reportCache := cache.NewLRUCache[*report.Report](cfg.ReportCacheSize, cfg.ReportCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(reportCache)
	cacheManager.StartCleanup(time.Minute)
	defer cacheManager.Stop()

	var prices services.PriceSource
	if cfg.QuoteFeedURL != "" {
		prices = quotes.NewClient(cfg.QuoteFeedURL)
	}

	// Report exports go straight to the spreadsheet when configured,
	// otherwise to an in-memory sink.
	var reportWriter sheets.ReportWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewClient(context.Background(),
			cfg.GoogleSpreadsheetID, cfg.GoogleTransactionSheet, cfg.GoogleReportSheet)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		reportWriter = client
	} else {
		reportWriter = mem.New()
	}

	reportService := services.NewReportService(repo, reportCache)
	deps := apphttp.Deps{
		Transactions: services.NewTransactionService(repo, publisher, reportService),
		Rentals:      services.NewRentalService(repo, publisher, reportService),
		Tasks:        services.NewTaskService(repo),
		Investments:  services.NewInvestmentService(repo, prices),
		Reports:      reportService,
		Calendars:    services.NewCalendarService(repo),
		Exports:      services.NewExportService(reportService, reportWriter),
		Entities:     services.NewEntityService(repo),
		Recurring:    services.NewRecurringService(repo),
	}

	port, _ := strconv.Atoi(cfg.Port)
	srv := apphttp.NewServer(port, deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
