// Package store declares the persistence gateway contract the rest of the
// application depends on. Implementations live in internal/storage.
package store

import (
	"context"
	"errors"

	"expensetracker/internal/core"
)

// ErrNotFound is returned by any operation keyed by an ID that does not
// exist in the store.
var ErrNotFound = errors.New("expense not found")

type (
	// ExpenseCreator persists a validated candidate and assigns its ID.
	ExpenseCreator interface {
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	}

	ExpenseReader interface {
		GetExpense(ctx context.Context, id string) (core.Expense, error)
	}

	// ExpenseLister returns all expenses sorted by date, newest first.
	ExpenseLister interface {
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	// ExpenseUpdater replaces the stored record under e.ID with e.
	ExpenseUpdater interface {
		UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	}

	ExpenseDeleter interface {
		DeleteExpense(ctx context.Context, id string) error
	}
)

// Store combines the full create/read/update/delete contract.
type Store interface {
	ExpenseCreator
	ExpenseReader
	ExpenseLister
	ExpenseUpdater
	ExpenseDeleter
}
