package storage

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// ExpenseRow mirrors one row of the expenses table.
type ExpenseRow struct {
	ID          string
	Title       string
	AmountCents int64
	Category    string
	Date        time.Time
	Description string
	Exported    int64
	ExportError int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const expenseColumns = `id, title, amount_cents, category, date, description, exported, export_error, created_at, updated_at`

func scanExpense(row interface{ Scan(dest ...any) error }) (ExpenseRow, error) {
	var e ExpenseRow
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.AmountCents,
		&e.Category,
		&e.Date,
		&e.Description,
		&e.Exported,
		&e.ExportError,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

type CreateExpenseParams struct {
	ID          string
	Title       string
	AmountCents int64
	Category    string
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (ExpenseRow, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO expenses (id, title, amount_cents, category, date, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+expenseColumns,
		arg.ID, arg.Title, arg.AmountCents, arg.Category, arg.Date, arg.Description, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanExpense(row)
}

func (q *Queries) GetExpense(ctx context.Context, id string) (ExpenseRow, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	return scanExpense(row)
}

func (q *Queries) ListExpenses(ctx context.Context) ([]ExpenseRow, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExpenseRow
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type UpdateExpenseParams struct {
	ID          string
	Title       string
	AmountCents int64
	Category    string
	Date        time.Time
	Description string
	UpdatedAt   time.Time
}

func (q *Queries) UpdateExpense(ctx context.Context, arg UpdateExpenseParams) (ExpenseRow, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE expenses
		SET title = ?, amount_cents = ?, category = ?, date = ?, description = ?, exported = 0, updated_at = ?
		WHERE id = ?
		RETURNING `+expenseColumns,
		arg.Title, arg.AmountCents, arg.Category, arg.Date, arg.Description, arg.UpdatedAt, arg.ID,
	)
	return scanExpense(row)
}

func (q *Queries) DeleteExpense(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) GetPendingExportExpenses(ctx context.Context, limit int64) ([]ExpenseRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE exported = 0
		ORDER BY created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExpenseRow
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (q *Queries) MarkExpenseExported(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `UPDATE expenses SET exported = 1, export_error = 0 WHERE id = ?`, id)
	return err
}

func (q *Queries) MarkExpenseExportError(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `UPDATE expenses SET export_error = export_error + 1 WHERE id = ?`, id)
	return err
}
