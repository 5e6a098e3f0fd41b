package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLoggerAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	log.InfoContext(ctx, "with_span")
	span.End()

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}

	if rec["trace_id"] != span.SpanContext().TraceID().String() {
		t.Fatalf("trace_id mismatch: %v", rec["trace_id"])
	}
	if rec["span_id"] == nil {
		t.Fatal("span_id missing")
	}

	buf.Reset()
	log.InfoContext(context.Background(), "without_span")

	rec = map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if _, ok := rec["trace_id"]; ok {
		t.Fatal("trace_id should be absent without a span")
	}
}

func TestLoggerLevelByEnv(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, "prod").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be dropped outside dev: %s", buf.String())
	}

	newLogger(&buf, "dev").Debug("shown")
	if buf.Len() == 0 {
		t.Fatal("debug should be logged in dev")
	}
}
