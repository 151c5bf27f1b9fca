package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "import finished", "season", 2023, "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id: %v", fields["trace_id"])
	}
	if fields["span_id"] != spanID.String() {
		t.Fatalf("unexpected span_id: %v", fields["span_id"])
	}
	if fields["season"] != int64(2023) {
		t.Fatalf("unexpected season field: %#v", fields["season"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %#v", fields["error"])
	}
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Warn("dangling", "only-key")
	if got := logs.All()[0].ContextMap(); got["only-key"] != nil {
		t.Fatalf("expected nil value for dangling key, got %#v", got["only-key"])
	}

	var nilLogger *Logger
	nilLogger.Info("should not panic")
	if nilLogger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestNewJSONWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelWarn, &buf)

	logger.Info("hidden")
	logger.Warn("visible", "source", "ffdp")
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"source":"ffdp"`) {
		t.Fatalf("expected source field in output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestLogger_NamedAndDefault(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var nilLogger *Logger
	nilLogger.Named("scheduler").Info("job registered", "job_id", "weekly_import")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected nil logger to fall back to default, got %d entries", len(entries))
	}
	if entries[0].LoggerName != "scheduler" {
		t.Fatalf("unexpected logger name %q", entries[0].LoggerName)
	}
	if err := nilLogger.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
}
