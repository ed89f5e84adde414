// Package memory provides an in-memory RowAppender for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/export"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Expense
}

var _ export.RowAppender = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, e core.Expense) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, e)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.rows))
	copy(out, s.rows)
	return out
}
