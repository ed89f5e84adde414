// Package export defines the outbound port for pushing expense rows to an
// external spreadsheet-like target.
package export

import (
	"context"

	"expensetracker/internal/core"
)

// RowAppender appends one expense as a row on the export target and returns
// an opaque row reference.
type RowAppender interface {
	Append(ctx context.Context, e core.Expense) (rowRef string, err error)
}
