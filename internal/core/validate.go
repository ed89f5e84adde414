package core

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation messages, one per rejectable condition.
const (
	MsgTitleRequired    = "Please add a title"
	MsgTitleTooLong     = "Title cannot be more than 50 characters"
	MsgAmountRequired   = "Please add an amount"
	MsgAmountInvalid    = "Amount must be a number greater than 0"
	MsgCategoryRequired = "Please add a category"
	MsgDateInvalid      = "Date must be a valid calendar date"
	MsgDescTooLong      = "Description cannot be more than 500 characters"
)

// ExpenseInput is a candidate record as it arrives from a form or a JSON
// body: every field still string-typed and untrusted.
type ExpenseInput struct {
	Title       string
	Amount      string
	Category    string
	Date        string
	Description string
}

// FieldErrors maps a field name to its validation messages. It implements
// error so a failed validation can travel through ordinary error returns.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Messages flattens all field messages into one list, in field declaration
// order, for the transport error envelope.
func (fe FieldErrors) Messages() []string {
	var out []string
	for _, field := range []string{"title", "amount", "category", "date", "description"} {
		out = append(out, fe[field]...)
	}
	return out
}

func (fe FieldErrors) Error() string {
	return "validation failed: " + strings.Join(fe.Messages(), "; ")
}

// Validate checks a candidate against the model constraints and either
// returns the normalized expense or every violation found. The current time
// is injected so the missing-date default stays deterministic.
//
// The returned expense carries no ID; identity is assigned by the store.
func Validate(in ExpenseInput, now time.Time) (Expense, FieldErrors) {
	errs := FieldErrors{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs.add("title", MsgTitleRequired)
	}

	var amount Money
	amountStr := strings.TrimSpace(in.Amount)
	if amountStr == "" {
		errs.add("amount", MsgAmountRequired)
	} else if cents, err := ParseDecimalToCents(amountStr); err != nil {
		errs.add("amount", MsgAmountInvalid)
	} else {
		amount = Money{Cents: cents}
	}

	category := Category(strings.TrimSpace(in.Category))
	if category == "" {
		errs.add("category", MsgCategoryRequired)
	} else if !category.IsValid() {
		errs.add("category", fmt.Sprintf("%q is not a valid category", string(category)))
	}

	date := now
	if v := strings.TrimSpace(in.Date); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			errs.add("date", MsgDateInvalid)
		} else {
			date = parsed
		}
	}

	if title != "" && utf8.RuneCountInString(title) > TitleMaxLen {
		errs.add("title", MsgTitleTooLong)
	}
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		errs.add("description", MsgDescTooLong)
	}

	if len(errs) > 0 {
		return Expense{}, errs
	}

	return Expense{
		Title:       title,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: description,
	}, nil
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp,
// with or without fractional seconds.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Validate re-runs the validation engine against an already-typed expense.
// The store calls this before every write so a record can never reach disk
// unvalidated, no matter which path produced it.
func (e Expense) Validate() error {
	if _, errs := Validate(e.Input(), e.Date); errs != nil {
		return errs
	}
	return nil
}

// Input renders a persisted expense back into candidate form. Validating the
// result of Input yields the same expense, which keeps re-validation on
// update idempotent. The date keeps nanosecond precision: defaulted dates
// come from the clock and carry sub-second digits.
func (e Expense) Input() ExpenseInput {
	return ExpenseInput{
		Title:       e.Title,
		Amount:      e.Amount.String(),
		Category:    string(e.Category),
		Date:        e.Date.Format(time.RFC3339Nano),
		Description: e.Description,
	}
}
