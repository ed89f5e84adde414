package http

import (
	"errors"
	"log/slog"
	"net/http"

	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list expenses", "error", err)
		writeServerError(w)
		return
	}

	data := make([]expenseJSON, len(expenses))
	for i, e := range expenses {
		data[i] = toExpenseJSON(e)
	}
	writeList(w, data)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	body, err := decodeExpenseBody(r)
	if err != nil {
		slog.WarnContext(r.Context(), "Invalid request body", "error", err)
		writeBadRequest(w, "Invalid request body")
		return
	}

	created, err := s.svc.Create(r.Context(), body.input())
	var fieldErrs core.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeValidationError(w, fieldErrs)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create expense", "error", err)
		writeServerError(w)
		return
	}

	slog.InfoContext(r.Context(), "Expense created",
		"id", created.ID,
		"title", created.Title,
		"amount_cents", created.Amount.Cents,
		"category", created.Category)

	writeData(w, http.StatusCreated, toExpenseJSON(created))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	expense, err := s.svc.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeNotFound(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to get expense", "id", id, "error", err)
		writeServerError(w)
		return
	}

	writeData(w, http.StatusOK, toExpenseJSON(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := decodeExpenseBody(r)
	if err != nil {
		slog.WarnContext(r.Context(), "Invalid request body", "id", id, "error", err)
		writeBadRequest(w, "Invalid request body")
		return
	}

	updated, err := s.svc.Update(r.Context(), id, body.patch())
	var fieldErrs core.FieldErrors
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeNotFound(w)
		return
	case errors.As(err, &fieldErrs):
		writeValidationError(w, fieldErrs)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Failed to update expense", "id", id, "error", err)
		writeServerError(w)
		return
	}

	slog.InfoContext(r.Context(), "Expense updated", "id", updated.ID, "title", updated.Title)
	writeData(w, http.StatusOK, toExpenseJSON(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.svc.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeNotFound(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete expense", "id", id, "error", err)
		writeServerError(w)
		return
	}

	slog.InfoContext(r.Context(), "Expense deleted", "id", id)
	writeData(w, http.StatusOK, struct{}{})
}

// handleSummary serves the derived totals the dashboard renders: the grand
// total and the per-category breakdown over the full collection.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Summary(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to summarize expenses", "error", err)
		writeServerError(w)
		return
	}

	writeData(w, http.StatusOK, toSummaryJSON(summary))
}
