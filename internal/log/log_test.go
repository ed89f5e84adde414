package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := RequestID(ctx); got != "" {
		t.Fatalf("RequestID on empty context = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req_abc123")
	if got := RequestID(ctx); got != "req_abc123" {
		t.Fatalf("RequestID = %q, want req_abc123", got)
	}
}

func TestHandlerAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithRequestID(context.Background(), "req_abc123")
	logger.InfoContext(ctx, "Expense created", "id", "e1")

	out := buf.String()
	if !strings.Contains(out, "request_id=req_abc123") {
		t.Fatalf("log line missing request ID: %q", out)
	}
	if !strings.Contains(out, "id=e1") {
		t.Fatalf("log line lost its own attrs: %q", out)
	}
}

func TestHandlerWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "startup")

	if strings.Contains(buf.String(), "request_id") {
		t.Fatalf("request_id present without one in context: %q", buf.String())
	}
}

func TestHandlerWithAttrsKeepsDecoration(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil))).With("component", "worker")

	ctx := WithRequestID(context.Background(), "req_xyz")
	logger.InfoContext(ctx, "processed")

	out := buf.String()
	if !strings.Contains(out, "component=worker") || !strings.Contains(out, "request_id=req_xyz") {
		t.Fatalf("derived logger dropped attributes: %q", out)
	}
}
