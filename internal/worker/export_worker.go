package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/export"
	"expensetracker/internal/storage"
	"expensetracker/internal/store"
)

// ExportWorker pushes persisted expenses to the external export target. It
// is driven by AMQP events, with a periodic pending scan as backup in case
// messages are lost.
type ExportWorker struct {
	storage   *storage.SQLiteRepository
	appender  export.RowAppender
	batchSize int
}

func NewExportWorker(st *storage.SQLiteRepository, appender export.RowAppender, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   st,
		appender:  appender,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single expense event from the queue.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	slog.InfoContext(ctx, "Processing expense event", "id", msg.ID, "action", msg.Action)

	if msg.Action == amqp.ActionDeleted {
		// Nothing to push: the export log is append-only.
		slog.DebugContext(ctx, "Skipping deleted expense", "id", msg.ID)
		return nil
	}

	expense, err := w.storage.GetExpense(ctx, msg.ID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between event and processing; drop the message.
		slog.WarnContext(ctx, "Expense gone before export", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}

	return w.exportExpense(ctx, expense)
}

// ProcessPending exports any expenses the event path missed.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingExport(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	for _, expense := range pending {
		if err := w.exportExpense(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to export expense", "id", expense.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupCheck exports a larger pending backlog once at worker startup,
// recovering from missed events or worker downtime.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingExport(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending expenses for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending expenses found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending expenses on startup, processing...", "count", len(pending))

	exported := 0
	failed := 0
	for _, expense := range pending {
		if err := w.exportExpense(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to export expense during startup", "id", expense.ID, "error", err)
			failed++
			continue
		}
		exported++
	}

	slog.InfoContext(ctx, "Startup export completed",
		"total", len(pending),
		"exported", exported,
		"errors", failed)

	return nil
}

func (w *ExportWorker) exportExpense(ctx context.Context, e core.Expense) error {
	ref, err := w.appender.Append(ctx, e)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, e.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", e.ID, "error", markErr)
		}
		return fmt.Errorf("append to export target: %w", err)
	}

	if err := w.storage.MarkExported(ctx, e.ID); err != nil {
		// The export itself worked; only the bookkeeping failed.
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", e.ID, "error", err)
	}

	slog.InfoContext(ctx, "Exported expense",
		"id", e.ID,
		"row_ref", ref,
		"title", e.Title,
		"amount_cents", e.Amount.Cents)

	return nil
}
