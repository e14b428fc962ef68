// Package storage provides the SQLite persistence layer.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"

	_ "modernc.org/sqlite"
)

// Record kinds carried by the sync queue.
const (
	KindTransaction = "transaction"
	KindRental      = "rental"
)

// ErrNotFound is returned when a row does not exist or was soft deleted.
var ErrNotFound = errors.New("record not found")

type SQLiteRepository struct {
	db *sql.DB
}

// PendingSyncRecord is the minimal row handed to the sync queue consumers.
type PendingSyncRecord struct {
	QueueID  int64
	Kind     string
	RecordID int64
	Version  int64
}

// RecurringTaskRow pairs a recurring task template with its execution state.
type RecurringTaskRow struct {
	core.RecurringTask
	LastExecution time.Time
}

// RecurringTransactionRow pairs a recurring transaction template with its
// execution state.
type RecurringTransactionRow struct {
	core.RecurringTransaction
	LastExecution time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- entities and categories ---

func (r *SQLiteRepository) CreateEntity(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO entities (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("create entity: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListEntities(ctx context.Context) ([]core.Entity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM entities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	var entities []core.Entity
	for rows.Next() {
		var e core.Entity
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (entity_id, name, color) VALUES (?, ?, ?)`,
		c.EntityID, c.Name, c.Color)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, entityID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entity_id, name, color FROM categories WHERE entity_id = ? ORDER BY name`,
		entityID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.EntityID, &c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// --- transactions ---

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions
			(entity_id, type, description, amount_cents, due_date, payment_date, status, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.EntityID, string(tx.Type), tx.Description, tx.Amount.Cents,
		tx.DueDate.String(), nullDate(tx.PaymentDate), string(tx.Status), nullID(tx.CategoryID))
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"entity_id", tx.EntityID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents)
	return id, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, entity_id, type, description, amount_cents, due_date, payment_date, status, category_id
		FROM transactions WHERE id = ? AND deleted_at IS NULL`, id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, entityID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entity_id, type, description, amount_cents, due_date, payment_date, status, category_id
		FROM transactions
		WHERE entity_id = ? AND deleted_at IS NULL
		ORDER BY due_date, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func (r *SQLiteRepository) SoftDeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) MarkTransactionPaid(ctx context.Context, id int64, paymentDate core.Date) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET status = ?, payment_date = ?
		WHERE id = ? AND deleted_at IS NULL`,
		string(core.StatusPaid), paymentDate.String(), id)
	if err != nil {
		return fmt.Errorf("mark transaction paid: %w", err)
	}
	return requireRow(res)
}

// MarkOverdueTransactions flips pending transactions past their due date to
// OVERDUE and returns how many rows changed.
func (r *SQLiteRepository) MarkOverdueTransactions(ctx context.Context, today core.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET status = ?
		WHERE status = ? AND due_date < ? AND deleted_at IS NULL`,
		string(core.StatusOverdue), string(core.StatusPending), today.String())
	if err != nil {
		return 0, fmt.Errorf("mark overdue transactions: %w", err)
	}
	return res.RowsAffected()
}

// --- rentals ---

func (r *SQLiteRepository) CreateRental(ctx context.Context, rental core.Rental) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO rentals
			(entity_id, start_date, end_date, source, total_amount_cents, extra_fee_cents, guest_name, number_of_guests)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rental.EntityID, rental.StartDate.String(), rental.EndDate.String(), string(rental.Source),
		rental.TotalAmount.Cents, rental.ExtraFeeAmount.Cents, rental.GuestName, rental.NumberOfGuests)
	if err != nil {
		return 0, fmt.Errorf("create rental: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("rental insert id: %w", err)
	}

	slog.InfoContext(ctx, "Rental saved",
		"id", id,
		"entity_id", rental.EntityID,
		"source", rental.Source,
		"check_in", rental.StartDate.String(),
		"check_out", rental.EndDate.String())
	return id, nil
}

func (r *SQLiteRepository) GetRental(ctx context.Context, id int64) (*core.Rental, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, entity_id, start_date, end_date, source, total_amount_cents, extra_fee_cents, guest_name, number_of_guests
		FROM rentals WHERE id = ? AND deleted_at IS NULL`, id)

	rental, err := scanRental(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rental: %w", err)
	}
	return rental, nil
}

func (r *SQLiteRepository) ListRentals(ctx context.Context, entityID int64) ([]core.Rental, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entity_id, start_date, end_date, source, total_amount_cents, extra_fee_cents, guest_name, number_of_guests
		FROM rentals
		WHERE entity_id = ? AND deleted_at IS NULL
		ORDER BY start_date, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()

	var rentals []core.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		rentals = append(rentals, *rental)
	}
	return rentals, rows.Err()
}

func (r *SQLiteRepository) SoftDeleteRental(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rentals SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete rental: %w", err)
	}
	return requireRow(res)
}

// --- tasks ---

func (r *SQLiteRepository) CreateTask(ctx context.Context, task core.Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (entity_id, title, start_date, end_date, priority, completed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.EntityID, task.Title, task.StartDate.String(), task.EndDate.String(),
		task.Priority, task.Completed)
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	return res.LastInsertId()
}

// ListTasksInWindow returns tasks whose date range touches [start, end].
func (r *SQLiteRepository) ListTasksInWindow(ctx context.Context, entityID int64, start, end core.Date) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entity_id, title, start_date, end_date, priority, completed
		FROM tasks
		WHERE entity_id = ? AND deleted_at IS NULL
		  AND end_date >= ? AND start_date <= ?
		ORDER BY start_date, id`,
		entityID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("list tasks in window: %w", err)
	}
	defer rows.Close()

	var tasks []core.Task
	for rows.Next() {
		var (
			t          core.Task
			startS, endS string
		)
		if err := rows.Scan(&t.ID, &t.EntityID, &t.Title, &startS, &endS, &t.Priority, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if t.StartDate, err = core.ParseDate(startS); err != nil {
			return nil, fmt.Errorf("task %d start date: %w", t.ID, err)
		}
		if t.EndDate, err = core.ParseDate(endS); err != nil {
			return nil, fmt.Errorf("task %d end date: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteRepository) SetTaskCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = ? WHERE id = ? AND deleted_at IS NULL`, completed, id)
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) SoftDeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}
	return requireRow(res)
}

// --- recurring templates ---

func (r *SQLiteRepository) CreateRecurringTask(ctx context.Context, rt core.RecurringTask) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring_tasks (entity_id, title, start_date, end_date, every, priority)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rt.EntityID, rt.Title, rt.StartDate.String(), nullDate(rt.EndDate), string(rt.Every), rt.Priority)
	if err != nil {
		return 0, fmt.Errorf("create recurring task: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) CreateRecurringTransaction(ctx context.Context, rt core.RecurringTransaction) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring_transactions
			(entity_id, type, description, amount_cents, start_date, end_date, every, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.EntityID, string(rt.Type), rt.Description, rt.Amount.Cents,
		rt.StartDate.String(), nullDate(rt.EndDate), string(rt.Every), nullID(rt.CategoryID))
	if err != nil {
		return 0, fmt.Errorf("create recurring transaction: %w", err)
	}
	return res.LastInsertId()
}

// ListActiveRecurringTasks returns templates whose window contains now.
func (r *SQLiteRepository) ListActiveRecurringTasks(ctx context.Context, now time.Time) ([]RecurringTaskRow, error) {
	today := core.DateOf(now).String()
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entity_id, title, start_date, end_date, every, priority, last_execution_date
		FROM recurring_tasks
		WHERE active = 1 AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)
		ORDER BY id`,
		today, today)
	if err != nil {
		return nil, fmt.Errorf("list active recurring tasks: %w", err)
	}
	defer rows.Close()

	var out []RecurringTaskRow
	for rows.Next() {
		var (
			row      RecurringTaskRow
			startS   string
			endS     sql.NullString
			lastExec sql.NullTime
		)
		if err := rows.Scan(&row.ID, &row.EntityID, &row.Title, &startS, &endS,
			&row.Every, &row.Priority, &lastExec); err != nil {
			return nil, fmt.Errorf("scan recurring task: %w", err)
		}
		if row.StartDate, err = core.ParseDate(startS); err != nil {
			return nil, fmt.Errorf("recurring task %d start date: %w", row.ID, err)
		}
		if endS.Valid {
			if row.EndDate, err = core.ParseDate(endS.String); err != nil {
				return nil, fmt.Errorf("recurring task %d end date: %w", row.ID, err)
			}
		}
		if lastExec.Valid {
			row.LastExecution = lastExec.Time
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListActiveRecurringTransactions returns templates whose window contains now.
func (r *SQLiteRepository) ListActiveRecurringTransactions(ctx context.Context, now time.Time) ([]RecurringTransactionRow, error) {
	today := core.DateOf(now).String()
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entity_id, type, description, amount_cents, start_date, end_date, every, category_id, last_execution_date
		FROM recurring_transactions
		WHERE active = 1 AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)
		ORDER BY id`,
		today, today)
	if err != nil {
		return nil, fmt.Errorf("list active recurring transactions: %w", err)
	}
	defer rows.Close()

	var out []RecurringTransactionRow
	for rows.Next() {
		var (
			row      RecurringTransactionRow
			typeS    string
			startS   string
			endS     sql.NullString
			catID    sql.NullInt64
			lastExec sql.NullTime
		)
		if err := rows.Scan(&row.ID, &row.EntityID, &typeS, &row.Description, &row.Amount.Cents,
			&startS, &endS, &row.Every, &catID, &lastExec); err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		row.Type = core.TransactionType(typeS)
		if row.StartDate, err = core.ParseDate(startS); err != nil {
			return nil, fmt.Errorf("recurring transaction %d start date: %w", row.ID, err)
		}
		if endS.Valid {
			if row.EndDate, err = core.ParseDate(endS.String); err != nil {
				return nil, fmt.Errorf("recurring transaction %d end date: %w", row.ID, err)
			}
		}
		if catID.Valid {
			row.CategoryID = catID.Int64
		}
		if lastExec.Valid {
			row.LastExecution = lastExec.Time
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateRecurringTaskExecution(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recurring_tasks SET last_execution_date = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("update recurring task execution: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateRecurringTransactionExecution(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recurring_transactions SET last_execution_date = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("update recurring transaction execution: %w", err)
	}
	return nil
}

// --- investments ---

func (r *SQLiteRepository) CreateInvestment(ctx context.Context, inv core.Investment) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO investments (entity_id, symbol, name, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?)`,
		inv.EntityID, inv.Symbol, inv.Name, inv.Quantity.String(), inv.UnitPrice.String())
	if err != nil {
		return 0, fmt.Errorf("create investment: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListInvestments(ctx context.Context, entityID int64) ([]core.Investment, error) {
	return r.queryInvestments(ctx, `
		SELECT id, entity_id, symbol, name, quantity, unit_price, refreshed_at
		FROM investments WHERE entity_id = ? ORDER BY symbol`, entityID)
}

// ListAllInvestments returns every position across entities, for the price
// refresh job.
func (r *SQLiteRepository) ListAllInvestments(ctx context.Context) ([]core.Investment, error) {
	return r.queryInvestments(ctx, `
		SELECT id, entity_id, symbol, name, quantity, unit_price, refreshed_at
		FROM investments ORDER BY symbol`)
}

func (r *SQLiteRepository) queryInvestments(ctx context.Context, query string, args ...any) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []core.Investment
	for rows.Next() {
		var (
			inv         core.Investment
			qtyS, priceS string
			refreshed   sql.NullTime
		)
		if err := rows.Scan(&inv.ID, &inv.EntityID, &inv.Symbol, &inv.Name, &qtyS, &priceS, &refreshed); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		if inv.Quantity, err = decimal.NewFromString(qtyS); err != nil {
			return nil, fmt.Errorf("investment %d quantity: %w", inv.ID, err)
		}
		if inv.UnitPrice, err = decimal.NewFromString(priceS); err != nil {
			return nil, fmt.Errorf("investment %d unit price: %w", inv.ID, err)
		}
		if refreshed.Valid {
			inv.RefreshedAt = refreshed.Time
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateInvestmentPrice(ctx context.Context, id int64, price decimal.Decimal, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE investments SET unit_price = ?, refreshed_at = ? WHERE id = ?`,
		price.String(), at, id)
	if err != nil {
		return fmt.Errorf("update investment price: %w", err)
	}
	return requireRow(res)
}

// --- sync queue ---

func (r *SQLiteRepository) EnqueueSync(ctx context.Context, kind string, recordID, version int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sync_queue (record_kind, record_id, version) VALUES (?, ?, ?)`,
		kind, recordID, version)
	if err != nil {
		return 0, fmt.Errorf("enqueue sync: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]PendingSyncRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, record_kind, record_id, version
		FROM sync_queue WHERE status = 'pending'
		ORDER BY created_at, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncRecord
	for rows.Next() {
		var rec PendingSyncRecord
		if err := rows.Scan(&rec.QueueID, &rec.Kind, &rec.RecordID, &rec.Version); err != nil {
			return nil, fmt.Errorf("scan pending sync: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkSyncProcessing(ctx context.Context, queueID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET status = 'processing', updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'pending'`, queueID)
	if err != nil {
		return fmt.Errorf("mark sync processing: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSyncCompleted(ctx context.Context, queueID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET status = 'completed', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, queueID)
	if err != nil {
		return fmt.Errorf("mark sync completed: %w", err)
	}
	slog.InfoContext(ctx, "Sync queue item completed", "queue_id", queueID)
	return nil
}

// MarkSyncError bumps the retry count, requeueing the item until maxRetries
// is exhausted.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, queueID int64, maxRetries int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET
			retry_count = retry_count + 1,
			status = CASE WHEN retry_count + 1 >= ? THEN 'error' ELSE 'pending' END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, maxRetries, queueID)
	if err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	slog.WarnContext(ctx, "Sync queue item errored", "queue_id", queueID)
	return nil
}

// ResetStaleProcessing requeues items stuck in processing after a crash.
func (r *SQLiteRepository) ResetStaleProcessing(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET status = 'pending', updated_at = CURRENT_TIMESTAMP
		WHERE status = 'processing'`)
	if err != nil {
		return fmt.Errorf("reset stale processing: %w", err)
	}
	return nil
}

// CleanupCompleted removes completed items older than age.
func (r *SQLiteRepository) CleanupCompleted(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sync_queue WHERE status = 'completed' AND updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup completed sync items: %w", err)
	}
	return res.RowsAffected()
}

// --- scan helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*core.Transaction, error) {
	var (
		tx       core.Transaction
		typeS    string
		statusS  string
		dueS     string
		paymentS sql.NullString
		catID    sql.NullInt64
	)
	err := row.Scan(&tx.ID, &tx.EntityID, &typeS, &tx.Description, &tx.Amount.Cents,
		&dueS, &paymentS, &statusS, &catID)
	if err != nil {
		return nil, err
	}
	tx.Type = core.TransactionType(typeS)
	tx.Status = core.TransactionStatus(statusS)
	if tx.DueDate, err = core.ParseDate(dueS); err != nil {
		return nil, fmt.Errorf("transaction %d due date: %w", tx.ID, err)
	}
	if paymentS.Valid {
		if tx.PaymentDate, err = core.ParseDate(paymentS.String); err != nil {
			return nil, fmt.Errorf("transaction %d payment date: %w", tx.ID, err)
		}
	}
	if catID.Valid {
		tx.CategoryID = catID.Int64
	}
	return &tx, nil
}

func scanRental(row rowScanner) (*core.Rental, error) {
	var (
		rental core.Rental
		sourceS string
		startS  string
		endS    string
	)
	err := row.Scan(&rental.ID, &rental.EntityID, &startS, &endS, &sourceS,
		&rental.TotalAmount.Cents, &rental.ExtraFeeAmount.Cents,
		&rental.GuestName, &rental.NumberOfGuests)
	if err != nil {
		return nil, err
	}
	rental.Source = core.RentalSource(sourceS)
	if rental.StartDate, err = core.ParseDate(startS); err != nil {
		return nil, fmt.Errorf("rental %d start date: %w", rental.ID, err)
	}
	if rental.EndDate, err = core.ParseDate(endS); err != nil {
		return nil, fmt.Errorf("rental %d end date: %w", rental.ID, err)
	}
	return &rental, nil
}

func nullDate(d core.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
