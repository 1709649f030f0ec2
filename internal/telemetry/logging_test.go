package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("cart updated")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}

	logger.Warn("catalog slow")
	entry := decodeEntry(t, &buf)
	if entry["msg"] != "catalog slow" {
		t.Errorf("expected msg 'catalog slow', got %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("expected level WARN, got %v", entry["level"])
	}
}

func TestLoggerAddsTraceContext(t *testing.T) {
	recordSpans(t)

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug)

	ctx, span := StartSpan(context.Background(), "SubmitOrder")
	defer span.End()

	logger.InfoContext(ctx, "order submitted", "order_id", "o-1")

	entry := decodeEntry(t, &buf)
	if entry["trace_id"] != TraceID(ctx) {
		t.Errorf("expected trace_id %s, got %v", TraceID(ctx), entry["trace_id"])
	}
	if entry["span_id"] != SpanID(ctx) {
		t.Errorf("expected span_id %s, got %v", SpanID(ctx), entry["span_id"])
	}
	if entry["order_id"] != "o-1" {
		t.Errorf("expected order_id o-1, got %v", entry["order_id"])
	}
}

func TestLoggerWithoutSpanOmitsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("started")

	entry := decodeEntry(t, &buf)
	if _, ok := entry["trace_id"]; ok {
		t.Error("expected no trace_id without a span")
	}
	if _, ok := entry["span_id"]; ok {
		t.Error("expected no span_id without a span")
	}
}

func TestLoggerKeepsTraceContextOutsideGroups(t *testing.T) {
	recordSpans(t)

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).
		With("component", "console").
		WithGroup("cart").
		With("lines", 2)

	ctx, span := StartSpan(context.Background(), "AddProduct")
	defer span.End()

	logger.InfoContext(ctx, "line added", "product_id", 7)

	entry := decodeEntry(t, &buf)
	if _, ok := entry["trace_id"].(string); !ok {
		t.Error("expected trace_id at the root")
	}
	if entry["component"] != "console" {
		t.Errorf("expected component at the root, got %v", entry["component"])
	}

	group, ok := entry["cart"].(map[string]any)
	if !ok {
		t.Fatalf("expected cart group, got %v", entry)
	}
	if group["lines"] != float64(2) {
		t.Errorf("expected cart.lines 2, got %v", group["lines"])
	}
	if group["product_id"] != float64(7) {
		t.Errorf("expected cart.product_id 7, got %v", group["product_id"])
	}
	if _, ok := group["trace_id"]; ok {
		t.Error("trace_id must not be nested in the group")
	}
}

func TestLoggerNestsAttrsAtTheirGroupLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).
		WithGroup("order").
		With("id", "o-1").
		WithGroup("payment").
		With("method", "cash")

	logger.Info("order submitted", "change_due", "0")

	entry := decodeEntry(t, &buf)
	if _, ok := entry["id"]; ok {
		t.Error("id must not be written at the root")
	}

	order, ok := entry["order"].(map[string]any)
	if !ok {
		t.Fatalf("expected order group, got %v", entry)
	}
	if order["id"] != "o-1" {
		t.Errorf("expected order.id o-1, got %v", order["id"])
	}
	if _, ok := order["method"]; ok {
		t.Error("method must not be written in the order group")
	}

	payment, ok := order["payment"].(map[string]any)
	if !ok {
		t.Fatalf("expected order.payment group, got %v", order)
	}
	if payment["method"] != "cash" {
		t.Errorf("expected order.payment.method cash, got %v", payment["method"])
	}
	if payment["change_due"] != "0" {
		t.Errorf("expected order.payment.change_due 0, got %v", payment["change_due"])
	}
}
