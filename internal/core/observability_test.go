package core

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"expvar"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"tankmate/pkg/domain"
)

func TestNoopObservability(_ *testing.T) {
	logger := noopLogger{}
	logger.Debug("debug", "key", "value")
	logger.Info("info", "key", "value")
	logger.Warn("warn", "key", "value")
	logger.Error("error", "key", "value")
	noopMetrics{}.Observe(context.Background(), "op", true, time.Millisecond)
	_, span := noopTracer{}.Start(context.Background(), "op")
	span.End(nil)
}

func TestExpvarMetricsRecorder(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if expvar.Get(rec.Name()) == nil {
		t.Fatalf("expected recorder published as %s", rec.Name())
	}
	ctx := context.Background()
	rec.Observe(ctx, OperationEvaluate, true, 2*time.Millisecond)
	rec.Observe(ctx, OperationEvaluate, false, 3*time.Millisecond)
	rec.Observe(ctx, "", true, time.Second)

	snap := rec.Snapshot()
	if snap.DurationsMS[OperationEvaluate] != 5 {
		t.Fatalf("expected 5ms total, got %v", snap.DurationsMS[OperationEvaluate])
	}
	if snap.Results[OperationEvaluate]["success"] != 1 || snap.Results[OperationEvaluate]["error"] != 1 {
		t.Fatalf("unexpected results %+v", snap.Results)
	}
	if len(snap.Results) != 1 {
		t.Fatalf("empty operation must be ignored, got %+v", snap.Results)
	}
	snap.Results[OperationEvaluate]["success"] = 99
	if rec.Snapshot().Results[OperationEvaluate]["success"] != 1 {
		t.Fatalf("snapshot must be a copy")
	}
}

func TestJSONTracer(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	svc := NewService(WithTracer(tracer))
	_, _ = svc.Evaluate(context.Background(), sampleCatalog(), Request{Entries: []domain.SelectionEntry{{SpeciesID: "guppy"}}})
	_, _ = svc.Evaluate(context.Background(), sampleCatalog(), Request{})

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(entries))
	}
	if entries[0].Status != "success" || entries[1].Status != "error" || !strings.Contains(entries[1].Error, "no recognized species") {
		t.Fatalf("unexpected entries %+v", entries)
	}
	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		var entry JSONTraceEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("decode span line: %v", err)
		}
		if entry.Operation != OperationEvaluate {
			t.Fatalf("unexpected operation %q", entry.Operation)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", lines)
	}
}

func TestJSONTracerWithoutWriter(t *testing.T) {
	tracer := NewJSONTracer(nil)
	_, span := tracer.Start(context.Background(), "import")
	span.End(errors.New("boom"))
	if entries := tracer.Entries(); len(entries) != 1 || entries[0].Error != "boom" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusMetricsRecorder(reg, "")
	svc := NewService(WithMetrics(rec))
	_, _ = svc.Evaluate(context.Background(), sampleCatalog(), Request{Entries: []domain.SelectionEntry{{SpeciesID: "guppy"}}})
	_, _ = svc.Evaluate(context.Background(), sampleCatalog(), Request{})
	rec.Observe(context.Background(), "", true, time.Second)

	if got := testutil.ToFloat64(rec.operations.WithLabelValues(OperationEvaluate, "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues(OperationEvaluate, "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if got := testutil.CollectAndCount(rec.durations); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	if !names["tankmate_operations_total"] || !names["tankmate_operation_duration_seconds"] {
		t.Fatalf("unexpected metric families %v", names)
	}
}
