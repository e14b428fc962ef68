package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/amqp"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/config"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/integrations/quotes"
	applog "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/log"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/services"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

func main() {
	// Load .env for local development; containers set real env vars.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentRecurring)
	applog.SetDefault(logger)

	logger.Info("Starting recurring-worker")

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

	// Transactions created from recurring templates go through the same
	// sync path as manual ones, so the publisher is wired here too.
	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without notifications", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	taskService := services.NewTaskService(repo)
	transactionService := services.NewTransactionService(repo, publisher, nil)
	processor := services.NewRecurringProcessor(repo, taskService, transactionService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()

	if _, err := scheduler.AddFunc(cfg.RecurringCron, func() {
		now := time.Now()
		processed, err := processor.ProcessDue(ctx, now)
		if err != nil {
			logger.Error("Recurring processing failed", "error", err)
			return
		}
		logger.Info("Recurring templates processed", "count", processed)

		flipped, err := repo.MarkOverdueTransactions(ctx, core.DateOf(now))
		if err != nil {
			logger.Error("Overdue sweep failed", "error", err)
			return
		}
		if flipped > 0 {
			logger.Info("Transactions marked overdue", "count", flipped)
		}
	}); err != nil {
		logger.Error("Invalid recurring cron expression", "cron", cfg.RecurringCron, "error", err)
		os.Exit(1)
	}

	if cfg.QuoteFeedURL != "" {
		investmentService := services.NewInvestmentService(repo, quotes.NewClient(cfg.QuoteFeedURL))
		if _, err := scheduler.AddFunc(cfg.PriceRefreshCron, func() {
			updated, err := investmentService.RefreshPrices(ctx, time.Now())
			if err != nil {
				logger.Error("Price refresh failed", "error", err)
				return
			}
			logger.Info("Investment prices refreshed", "updated", updated)
		}); err != nil {
			logger.Error("Invalid price refresh cron expression", "cron", cfg.PriceRefreshCron, "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("Quote feed disabled, skipping price refresh schedule")
	}

	scheduler.Start()
	logger.Info("Scheduler started",
		"recurring_cron", cfg.RecurringCron,
		"price_refresh_cron", cfg.PriceRefreshCron)

	<-ctx.Done()

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("Timed out waiting for running jobs")
	}
	logger.Info("Recurring worker stopped gracefully")
}
