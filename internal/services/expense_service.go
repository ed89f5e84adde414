package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expensetracker/internal/amqp"
	"expensetracker/internal/cache"
	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

// Summary cache tuning. TTL is a backstop only: every mutation invalidates.
const (
	summaryCacheKey  = "summary"
	summaryCacheSize = 4
	summaryCacheTTL  = 30 * time.Second
)

// EventPublisher publishes expense lifecycle events for the export worker.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id string, action amqp.Action) error
}

// ExpensePatch carries the fields of a partial update. Nil means "keep the
// stored value"; the merged record always goes through full validation.
type ExpensePatch struct {
	Title       *string
	Amount      *string
	Category    *string
	Date        *string
	Description *string
}

// ExpenseService orchestrates validation, persistence and event publication.
// A publish failure never fails the request: the record is already durable
// and the worker's pending scan will catch up.
type ExpenseService struct {
	store     store.Store
	publisher EventPublisher
	summaries *cache.LRU[core.Summary]
	now       func() time.Time
}

func NewExpenseService(st store.Store, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     st,
		publisher: publisher,
		summaries: cache.NewLRU[core.Summary](summaryCacheSize, summaryCacheTTL),
		now:       time.Now,
	}
}

// WithClock overrides the injected clock, for tests.
func (s *ExpenseService) WithClock(now func() time.Time) *ExpenseService {
	s.now = now
	return s
}

// Create validates a candidate and persists it. On validation failure the
// FieldErrors are returned as-is so the transport layer can surface every
// message at once.
func (s *ExpenseService) Create(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	candidate, errs := core.Validate(in, s.now())
	if errs != nil {
		return core.Expense{}, errs
	}

	created, err := s.store.CreateExpense(ctx, candidate)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.summaries.Delete(summaryCacheKey)
	s.publish(ctx, created.ID, amqp.ActionCreated)
	return created, nil
}

// Get returns a single expense or store.ErrNotFound.
func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// List returns all expenses sorted by date, newest first.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// Summary aggregates the whole collection. The result is cached until the
// next mutation (or the TTL), so repeated dashboard polls don't rescan the
// table.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, error) {
	if cached, ok := s.summaries.Get(summaryCacheKey); ok {
		return cached, nil
	}

	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list expenses: %w", err)
	}

	summary := core.Summarize(expenses)
	s.summaries.Set(summaryCacheKey, summary)
	return summary, nil
}

// Update merges a patch onto the stored record and re-validates the result
// as a whole. Either every field passes or nothing is written.
func (s *ExpenseService) Update(ctx context.Context, id string, patch ExpensePatch) (core.Expense, error) {
	existing, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}

	in := existing.Input()
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Amount != nil {
		in.Amount = *patch.Amount
	}
	if patch.Category != nil {
		in.Category = *patch.Category
	}
	if patch.Date != nil {
		in.Date = *patch.Date
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}

	merged, errs := core.Validate(in, s.now())
	if errs != nil {
		return core.Expense{}, errs
	}
	merged.ID = existing.ID

	updated, err := s.store.UpdateExpense(ctx, merged)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.summaries.Delete(summaryCacheKey)
	s.publish(ctx, updated.ID, amqp.ActionUpdated)
	return updated, nil
}

// Delete removes the record permanently.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.summaries.Delete(summaryCacheKey)
	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, id string, action amqp.Action) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"id", id,
			"action", action,
			"error", err)
	}
}
