package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

// RecurringStore is the storage surface the recurring processor needs.
type RecurringStore interface {
	ListActiveRecurringTasks(ctx context.Context, now time.Time) ([]storage.RecurringTaskRow, error)
	ListActiveRecurringTransactions(ctx context.Context, now time.Time) ([]storage.RecurringTransactionRow, error)
	UpdateRecurringTaskExecution(ctx context.Context, id int64, at time.Time) error
	UpdateRecurringTransactionExecution(ctx context.Context, id int64, at time.Time) error
}

// TaskCreator creates one-off tasks. Satisfied by *TaskService.
type TaskCreator interface {
	Create(ctx context.Context, t core.Task) (int64, error)
}

// TransactionCreator creates transactions. Satisfied by *TransactionService.
type TransactionCreator interface {
	Create(ctx context.Context, tx core.Transaction) (int64, error)
}

// RecurringProcessor materializes due recurring templates into concrete
// tasks and transactions.
type RecurringProcessor struct {
	store        RecurringStore
	tasks        TaskCreator
	transactions TransactionCreator
}

func NewRecurringProcessor(store RecurringStore, tasks TaskCreator, transactions TransactionCreator) *RecurringProcessor {
	return &RecurringProcessor{
		store:        store,
		tasks:        tasks,
		transactions: transactions,
	}
}

// ProcessDue walks every active template and creates an instance for each
// one that is due at now. Failures on individual templates are logged and
// skipped so one bad template cannot stall the rest.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	processed := 0

	n, err := p.processTasks(ctx, now)
	if err != nil {
		return processed, err
	}
	processed += n

	n, err = p.processTransactions(ctx, now)
	if err != nil {
		return processed, err
	}
	processed += n

	slog.InfoContext(ctx, "Recurring processing complete",
		"processed", processed,
		"processing_date", now.Format("2006-01-02"))
	return processed, nil
}

func (p *RecurringProcessor) processTasks(ctx context.Context, now time.Time) (int, error) {
	templates, err := p.store.ListActiveRecurringTasks(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list active recurring tasks: %w", err)
	}

	count := 0
	for _, tpl := range templates {
		due, err := p.isDue(tpl.Every, tpl.LastExecution, now, tpl.StartDate)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to check recurring task dueness",
				"id", tpl.ID, "error", err)
			continue
		}
		if !due {
			continue
		}

		today := core.DateOf(now)
		task := core.Task{
			EntityID:  tpl.EntityID,
			Title:     tpl.Title,
			StartDate: today,
			EndDate:   today,
			Priority:  tpl.Priority,
		}
		if _, err := p.tasks.Create(ctx, task); err != nil {
			slog.ErrorContext(ctx, "Failed to create task from recurring template",
				"recurring_id", tpl.ID, "title", tpl.Title, "error", err)
			continue
		}

		if err := p.store.UpdateRecurringTaskExecution(ctx, tpl.ID, now); err != nil {
			// The task exists; worst case the next run re-checks dueness.
			slog.ErrorContext(ctx, "Failed to update recurring task execution",
				"recurring_id", tpl.ID, "error", err)
		}

		count++
		slog.InfoContext(ctx, "Created task from recurring template",
			"recurring_id", tpl.ID,
			"title", tpl.Title,
			"frequency", tpl.Every)
	}
	return count, nil
}

func (p *RecurringProcessor) processTransactions(ctx context.Context, now time.Time) (int, error) {
	templates, err := p.store.ListActiveRecurringTransactions(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list active recurring transactions: %w", err)
	}

	count := 0
	for _, tpl := range templates {
		due, err := p.isDue(tpl.Every, tpl.LastExecution, now, tpl.StartDate)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to check recurring transaction dueness",
				"id", tpl.ID, "error", err)
			continue
		}
		if !due {
			continue
		}

		tx := core.Transaction{
			EntityID:    tpl.EntityID,
			Type:        tpl.Type,
			Description: tpl.Description,
			Amount:      tpl.Amount,
			DueDate:     core.DateOf(now),
			Status:      core.StatusPending,
			CategoryID:  tpl.CategoryID,
		}
		if _, err := p.transactions.Create(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to create transaction from recurring template",
				"recurring_id", tpl.ID, "description", tpl.Description, "error", err)
			continue
		}

		if err := p.store.UpdateRecurringTransactionExecution(ctx, tpl.ID, now); err != nil {
			slog.ErrorContext(ctx, "Failed to update recurring transaction execution",
				"recurring_id", tpl.ID, "error", err)
		}

		count++
		slog.InfoContext(ctx, "Created transaction from recurring template",
			"recurring_id", tpl.ID,
			"description", tpl.Description,
			"amount_cents", tpl.Amount.Cents,
			"frequency", tpl.Every)
	}
	return count, nil
}

func (p *RecurringProcessor) isDue(every core.RepetitionType, lastExecution time.Time, now time.Time, startDate core.Date) (bool, error) {
	checker, err := GetDuenessChecker(every)
	if err != nil {
		return false, err
	}
	return checker.IsDue(lastExecution, now, startDate), nil
}
