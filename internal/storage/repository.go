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

	"github.com/google/uuid"

	"expensetracker/internal/core"
	"expensetracker/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements the store ports on a local SQLite database.
// Concurrent writes are linearized by SQLite's writer lock; the policy for
// conflicting updates to the same record is last write wins.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ store.Store = (*SQLiteRepository)(nil)

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

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateExpense implements store.ExpenseCreator. The candidate is validated
// again here: the store never trusts that a caller already did.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	now := time.Now().UTC()
	row, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		ID:          uuid.NewString(),
		Title:       e.Title,
		AmountCents: e.Amount.Cents,
		Category:    string(e.Category),
		Date:        e.Date.UTC(),
		Description: e.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", row.ID,
		"title", row.Title,
		"amount_cents", row.AmountCents,
		"category", row.Category)

	return toExpense(row), nil
}

// GetExpense implements store.ExpenseReader.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return toExpense(row), nil
}

// ListExpenses implements store.ExpenseLister, newest date first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses := make([]core.Expense, len(rows))
	for i, row := range rows {
		expenses[i] = toExpense(row)
	}
	return expenses, nil
}

// UpdateExpense implements store.ExpenseUpdater. The full record is
// re-validated and replaces the stored one; the export flag resets so the
// worker picks the new version up.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	row, err := r.queries.UpdateExpense(ctx, UpdateExpenseParams{
		ID:          e.ID,
		Title:       e.Title,
		AmountCents: e.Amount.Cents,
		Category:    string(e.Category),
		Date:        e.Date.UTC(),
		Description: e.Description,
		UpdatedAt:   time.Now().UTC(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated", "id", row.ID, "title", row.Title)
	return toExpense(row), nil
}

// DeleteExpense implements store.ExpenseDeleter. Deletion is permanent and
// the ID is never reused (IDs are random UUIDs).
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// GetPendingExport returns expenses not yet appended to the export target.
func (r *SQLiteRepository) GetPendingExport(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := r.queries.GetPendingExportExpenses(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending export expenses: %w", err)
	}

	expenses := make([]core.Expense, len(rows))
	for i, row := range rows {
		expenses[i] = toExpense(row)
	}
	return expenses, nil
}

// MarkExported marks an expense as successfully exported.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id string) error {
	if err := r.queries.MarkExpenseExported(ctx, id); err != nil {
		return fmt.Errorf("mark expense exported: %w", err)
	}
	slog.InfoContext(ctx, "Expense marked as exported", "id", id)
	return nil
}

// MarkExportError records a failed export attempt.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id string) error {
	if err := r.queries.MarkExpenseExportError(ctx, id); err != nil {
		return fmt.Errorf("mark expense export error: %w", err)
	}
	slog.WarnContext(ctx, "Expense marked with export error", "id", id)
	return nil
}

func toExpense(row ExpenseRow) core.Expense {
	return core.Expense{
		ID:          row.ID,
		Title:       row.Title,
		Amount:      core.Money{Cents: row.AmountCents},
		Category:    core.Category(row.Category),
		Date:        row.Date,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
