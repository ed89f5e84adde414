package amqp

import (
	"errors"
	"testing"
	"time"
)

func TestExpenseEventMessageRoundTrip(t *testing.T) {
	for _, action := range []Action{ActionCreated, ActionUpdated, ActionDeleted} {
		msg := NewExpenseEventMessage("abc-123", action)

		data, err := msg.ToJSON()
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}

		decoded, err := ExpenseEventMessageFromJSON(data)
		if err != nil {
			t.Fatalf("FromJSON failed: %v", err)
		}
		if decoded.ID != "abc-123" {
			t.Errorf("ID = %q, want abc-123", decoded.ID)
		}
		if decoded.Action != action {
			t.Errorf("Action = %q, want %q", decoded.Action, action)
		}
		if decoded.Timestamp.IsZero() {
			t.Error("Timestamp is zero")
		}
	}
}

func TestExpenseEventMessageFromJSONRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{broken"},
		{"unknown action", `{"id":"x","action":"renamed","timestamp":"2024-01-01T00:00:00Z"}`},
		{"missing action", `{"id":"x","timestamp":"2024-01-01T00:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExpenseEventMessageFromJSON([]byte(tt.data)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
		{63, 30 * time.Second},
		{100, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := exponentialBackoff(tt.attempt); got != tt.want {
			t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("Exception (504) Reason: \"channel/connection is not open\""), true},
		{errors.New("read tcp: connection reset by peer"), true},
		{errors.New("unexpected EOF"), true},
		{errors.New("write: broken pipe"), true},
		{errors.New("access refused: login failure"), false},
		{errors.New("NOT_FOUND - no exchange"), false},
	}

	for _, tt := range tests {
		if got := isConnectionError(tt.err); got != tt.want {
			t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
