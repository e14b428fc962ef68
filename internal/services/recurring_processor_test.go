package services

import (
	"context"
	"testing"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

type fakeRecurringStore struct {
	tasks        []storage.RecurringTaskRow
	transactions []storage.RecurringTransactionRow

	taskExecutions map[int64]time.Time
	txExecutions   map[int64]time.Time
}

func newFakeRecurringStore() *fakeRecurringStore {
	return &fakeRecurringStore{
		taskExecutions: map[int64]time.Time{},
		txExecutions:   map[int64]time.Time{},
	}
}

func (f *fakeRecurringStore) ListActiveRecurringTasks(_ context.Context, _ time.Time) ([]storage.RecurringTaskRow, error) {
	return f.tasks, nil
}

func (f *fakeRecurringStore) ListActiveRecurringTransactions(_ context.Context, _ time.Time) ([]storage.RecurringTransactionRow, error) {
	return f.transactions, nil
}

func (f *fakeRecurringStore) UpdateRecurringTaskExecution(_ context.Context, id int64, at time.Time) error {
	f.taskExecutions[id] = at
	return nil
}

func (f *fakeRecurringStore) UpdateRecurringTransactionExecution(_ context.Context, id int64, at time.Time) error {
	f.txExecutions[id] = at
	return nil
}

type fakeTaskCreator struct {
	created []core.Task
}

func (f *fakeTaskCreator) Create(_ context.Context, t core.Task) (int64, error) {
	f.created = append(f.created, t)
	return int64(len(f.created)), nil
}

type fakeTransactionCreator struct {
	created []core.Transaction
}

func (f *fakeTransactionCreator) Create(_ context.Context, tx core.Transaction) (int64, error) {
	f.created = append(f.created, tx)
	return int64(len(f.created)), nil
}

func TestRecurringProcessor_ProcessDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeRecurringStore()

	store.tasks = []storage.RecurringTaskRow{
		{
			// Due: monthly, last run in February, target day 10.
			RecurringTask: core.RecurringTask{
				ID: 1, EntityID: 1, Title: "Pay condo fee",
				StartDate: core.NewDate(2026, 1, 10), Every: core.Monthly,
			},
			LastExecution: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			// Not due: already ran this month.
			RecurringTask: core.RecurringTask{
				ID: 2, EntityID: 1, Title: "Water plants",
				StartDate: core.NewDate(2026, 1, 5), Every: core.Monthly,
			},
			LastExecution: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		},
	}
	store.transactions = []storage.RecurringTransactionRow{
		{
			// Due: never executed.
			RecurringTransaction: core.RecurringTransaction{
				ID: 7, EntityID: 1, Type: core.Expense, Description: "Internet",
				Amount: core.Money{Cents: 9900}, StartDate: core.NewDate(2026, 1, 1),
				Every: core.Monthly, CategoryID: 3,
			},
		},
	}

	tasks := &fakeTaskCreator{}
	txs := &fakeTransactionCreator{}
	p := NewRecurringProcessor(store, tasks, txs)

	processed, err := p.ProcessDue(context.Background(), now)
	if err != nil {
		t.Fatalf("ProcessDue() error = %v", err)
	}
	if processed != 2 {
		t.Fatalf("processed = %d, want 2", processed)
	}

	if len(tasks.created) != 1 {
		t.Fatalf("created tasks = %d, want 1", len(tasks.created))
	}
	task := tasks.created[0]
	if task.Title != "Pay condo fee" {
		t.Errorf("task title = %q", task.Title)
	}
	today := core.DateOf(now)
	if !task.StartDate.Equal(today) || !task.EndDate.Equal(today) {
		t.Errorf("task should be a single-day task on %s, got %s..%s", today, task.StartDate, task.EndDate)
	}
	if _, ok := store.taskExecutions[1]; !ok {
		t.Error("due task template should have its execution date updated")
	}
	if _, ok := store.taskExecutions[2]; ok {
		t.Error("skipped template should not be touched")
	}

	if len(txs.created) != 1 {
		t.Fatalf("created transactions = %d, want 1", len(txs.created))
	}
	tx := txs.created[0]
	if tx.Status != core.StatusPending {
		t.Errorf("generated transaction status = %s, want PENDING", tx.Status)
	}
	if !tx.DueDate.Equal(today) {
		t.Errorf("generated transaction due date = %s, want %s", tx.DueDate, today)
	}
	if tx.Amount.Cents != 9900 || tx.CategoryID != 3 {
		t.Errorf("generated transaction = %+v", tx)
	}
}

func TestRecurringProcessor_UnknownFrequencySkipped(t *testing.T) {
	store := newFakeRecurringStore()
	store.tasks = []storage.RecurringTaskRow{
		{
			RecurringTask: core.RecurringTask{
				ID: 1, EntityID: 1, Title: "Odd one",
				StartDate: core.NewDate(2026, 1, 1), Every: core.RepetitionType("fortnightly"),
			},
		},
	}

	tasks := &fakeTaskCreator{}
	p := NewRecurringProcessor(store, tasks, &fakeTransactionCreator{})

	processed, err := p.ProcessDue(context.Background(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ProcessDue() error = %v", err)
	}
	if processed != 0 || len(tasks.created) != 0 {
		t.Errorf("unknown frequency should be skipped, processed = %d", processed)
	}
}
