package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

// maxBodySize caps request bodies; expense payloads are tiny.
const maxBodySize = 64 << 10 // 64KB

// flexString decodes a JSON string or number into its string form; any other
// JSON value is rejected. Form-driven clients send amounts as strings, API
// clients as numbers; the validation engine takes strings either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	var v json.Number
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("expected string or number, got %s", s)
	}
	*f = flexString(v.String())
	return nil
}

// expenseBody is the decoded request payload for create and update. Nil
// fields were absent from the body, which matters for partial updates.
type expenseBody struct {
	Title       *flexString `json:"title"`
	Amount      *flexString `json:"amount"`
	Category    *flexString `json:"category"`
	Date        *flexString `json:"date"`
	Description *flexString `json:"description"`
}

func decodeExpenseBody(r *http.Request) (expenseBody, error) {
	var body expenseBody

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return body, fmt.Errorf("read body: %w", err)
	}
	if len(raw) == 0 {
		return body, fmt.Errorf("empty body")
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return body, fmt.Errorf("parse JSON: %w", err)
	}
	return body, nil
}

func deref(f *flexString) string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// input assembles the validation candidate for create, where absent and
// empty fields mean the same thing.
func (b expenseBody) input() core.ExpenseInput {
	return core.ExpenseInput{
		Title:       deref(b.Title),
		Amount:      deref(b.Amount),
		Category:    deref(b.Category),
		Date:        deref(b.Date),
		Description: deref(b.Description),
	}
}

// patch assembles the partial update, keeping the absent/empty distinction.
func (b expenseBody) patch() services.ExpensePatch {
	var p services.ExpensePatch
	if b.Title != nil {
		v := string(*b.Title)
		p.Title = &v
	}
	if b.Amount != nil {
		v := string(*b.Amount)
		p.Amount = &v
	}
	if b.Category != nil {
		v := string(*b.Category)
		p.Category = &v
	}
	if b.Date != nil {
		v := string(*b.Date)
		p.Date = &v
	}
	if b.Description != nil {
		v := string(*b.Description)
		p.Description = &v
	}
	return p
}
