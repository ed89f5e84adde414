package core

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func validInput() ExpenseInput {
	return ExpenseInput{
		Title:    "Coffee",
		Amount:   "4.5",
		Category: "Food",
		Date:     "2024-01-10",
	}
}

func TestValidateAccepted(t *testing.T) {
	e, errs := Validate(validInput(), testNow)
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if e.Title != "Coffee" {
		t.Errorf("Title = %q, want %q", e.Title, "Coffee")
	}
	if e.Amount.Cents != 450 {
		t.Errorf("Amount.Cents = %d, want 450", e.Amount.Cents)
	}
	if e.Category != CategoryFood {
		t.Errorf("Category = %q, want %q", e.Category, CategoryFood)
	}
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if !e.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", e.Date, want)
	}
	if e.ID != "" {
		t.Errorf("ID = %q, want empty on a candidate", e.ID)
	}
}

func TestValidateTrimsFields(t *testing.T) {
	in := validInput()
	in.Title = "  Coffee  "
	in.Description = "  morning run  "

	e, errs := Validate(in, testNow)
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if e.Title != "Coffee" {
		t.Errorf("Title = %q, want trimmed %q", e.Title, "Coffee")
	}
	if e.Description != "morning run" {
		t.Errorf("Description = %q, want trimmed %q", e.Description, "morning run")
	}
}

func TestValidateMissingDateDefaultsToNow(t *testing.T) {
	in := validInput()
	in.Date = ""

	e, errs := Validate(in, testNow)
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if !e.Date.Equal(testNow) {
		t.Errorf("Date = %v, want injected now %v", e.Date, testNow)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExpenseInput)
		field   string
		message string
	}{
		{"empty title", func(in *ExpenseInput) { in.Title = "" }, "title", MsgTitleRequired},
		{"whitespace title", func(in *ExpenseInput) { in.Title = "   " }, "title", MsgTitleRequired},
		{"title too long", func(in *ExpenseInput) { in.Title = strings.Repeat("x", 51) }, "title", MsgTitleTooLong},
		{"missing amount", func(in *ExpenseInput) { in.Amount = "" }, "amount", MsgAmountRequired},
		{"zero amount", func(in *ExpenseInput) { in.Amount = "0" }, "amount", MsgAmountInvalid},
		{"negative amount", func(in *ExpenseInput) { in.Amount = "-3" }, "amount", MsgAmountInvalid},
		{"non-numeric amount", func(in *ExpenseInput) { in.Amount = "abc" }, "amount", MsgAmountInvalid},
		{"missing category", func(in *ExpenseInput) { in.Category = "" }, "category", MsgCategoryRequired},
		{"unknown category", func(in *ExpenseInput) { in.Category = "Groceries" }, "category", `"Groceries" is not a valid category`},
		{"wrong case category", func(in *ExpenseInput) { in.Category = "food" }, "category", `"food" is not a valid category`},
		{"malformed date", func(in *ExpenseInput) { in.Date = "not-a-date" }, "date", MsgDateInvalid},
		{"impossible date", func(in *ExpenseInput) { in.Date = "2024-02-30" }, "date", MsgDateInvalid},
		{"description too long", func(in *ExpenseInput) { in.Description = strings.Repeat("x", 501) }, "description", MsgDescTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, errs := Validate(in, testNow)
			if errs == nil {
				t.Fatal("expected validation errors, got none")
			}
			if len(errs) != 1 {
				t.Fatalf("expected errors on one field, got %v", errs)
			}
			msgs := errs[tt.field]
			if len(msgs) != 1 || msgs[0] != tt.message {
				t.Fatalf("errs[%q] = %v, want [%q]", tt.field, msgs, tt.message)
			}
		})
	}
}

func TestValidateBoundaryLengths(t *testing.T) {
	in := validInput()
	in.Title = strings.Repeat("x", 50)
	in.Description = strings.Repeat("y", 500)

	if _, errs := Validate(in, testNow); errs != nil {
		t.Fatalf("boundary lengths rejected: %v", errs)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	in := ExpenseInput{
		Title:       "   ",
		Amount:      "-3",
		Category:    "InvalidCat",
		Date:        "not-a-date",
		Description: strings.Repeat("x", 501),
	}

	_, errs := Validate(in, testNow)
	if errs == nil {
		t.Fatal("expected validation errors, got none")
	}
	for _, field := range []string{"title", "amount", "category", "date", "description"} {
		if len(errs[field]) == 0 {
			t.Errorf("no error recorded for field %q: %v", field, errs)
		}
	}
	if got := len(errs.Messages()); got != 5 {
		t.Errorf("Messages() has %d entries, want 5: %v", got, errs.Messages())
	}
}

func TestValidateRFC3339Date(t *testing.T) {
	in := validInput()
	in.Date = "2024-01-10T15:04:05Z"

	e, errs := Validate(in, testNow)
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	want := time.Date(2024, 1, 10, 15, 4, 5, 0, time.UTC)
	if !e.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", e.Date, want)
	}
}

func TestValidateAllCategories(t *testing.T) {
	for _, cat := range Categories() {
		in := validInput()
		in.Category = string(cat)
		if _, errs := Validate(in, testNow); errs != nil {
			t.Errorf("category %q rejected: %v", cat, errs)
		}
	}
	if got := len(Categories()); got != 10 {
		t.Fatalf("len(Categories()) = %d, want 10", got)
	}
}

func TestValidateIdempotent(t *testing.T) {
	// A record that passed validation must pass again unchanged when rendered
	// back to input form, otherwise updates could reject or drift stored data.
	subSecondNow := time.Date(2024, 3, 15, 10, 30, 0, 123456789, time.UTC)

	tests := []struct {
		name string
		in   ExpenseInput
	}{
		{"explicit date", validInput()},
		// A defaulted date comes from the clock and carries nanoseconds,
		// which the input rendering must not truncate.
		{"defaulted sub-second date", ExpenseInput{Title: "Coffee", Amount: "4.5", Category: "Food"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, errs := Validate(tt.in, subSecondNow)
			if errs != nil {
				t.Fatalf("unexpected validation errors: %v", errs)
			}

			again, errs := Validate(e.Input(), subSecondNow)
			if errs != nil {
				t.Fatalf("re-validation of accepted record failed: %v", errs)
			}
			if !again.Date.Equal(e.Date) {
				t.Fatalf("date changed on re-validation: %v vs %v", again.Date, e.Date)
			}
			if again.Title != e.Title || again.Amount != e.Amount || again.Category != e.Category || again.Description != e.Description {
				t.Fatalf("re-validation changed the record: %+v vs %+v", again, e)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	e, _ := Validate(validInput(), testNow)
	if err := e.Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}

	e.Amount = Money{Cents: 0}
	if err := e.Validate(); err == nil {
		t.Fatal("expense with zero amount accepted")
	}
}

func TestFieldErrorsMessagesOrder(t *testing.T) {
	errs := FieldErrors{}
	errs.add("description", MsgDescTooLong)
	errs.add("title", MsgTitleRequired)
	errs.add("amount", MsgAmountInvalid)

	got := errs.Messages()
	want := []string{MsgTitleRequired, MsgAmountInvalid, MsgDescTooLong}
	if len(got) != len(want) {
		t.Fatalf("Messages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Messages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
