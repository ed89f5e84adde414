// Package http exposes the expense REST API.
//
// Every response uses the envelope {success, data?, error?, count?} so
// clients can switch on one shape for both outcomes.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"expensetracker/internal/core"
)

type envelope struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// expenseJSON is the wire rendering of one expense. Amount travels as a
// major-unit decimal number for presentation; the cents value stays internal.
type expenseJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount.Float64(),
		Category:    string(e.Category),
		Date:        e.Date,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type summaryJSON struct {
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"byCategory"`
}

func toSummaryJSON(s core.Summary) summaryJSON {
	out := summaryJSON{
		Total:      s.Total.Float64(),
		ByCategory: make(map[string]float64, len(s.ByCategory)),
	}
	for cat, amount := range s.ByCategory {
		out.ByCategory[string(cat)] = amount.Float64()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeList(w http.ResponseWriter, data []expenseJSON) {
	count := len(data)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

// writeValidationError reports every violation at once as a message list.
func writeValidationError(w http.ResponseWriter, errs core.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: errs.Messages()})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: "No expense found"})
}

func writeServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "Server Error"})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msg})
}
