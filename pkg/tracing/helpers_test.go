package tracing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.opencensus.io/trace"
)

type recordingExporter struct {
	mu    sync.Mutex
	spans []*trace.SpanData
}

func (e *recordingExporter) ExportSpan(s *trace.SpanData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = append(e.spans, s)
}

func (e *recordingExporter) find(name string) *trace.SpanData {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.spans {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func withExporter(t *testing.T) *recordingExporter {
	t.Helper()
	exp := &recordingExporter{}
	trace.RegisterExporter(exp)
	t.Cleanup(func() { trace.UnregisterExporter(exp) })
	return exp
}

func sampled() trace.StartOption {
	return trace.WithSampler(trace.AlwaysSample())
}

func TestStartServiceSpan(t *testing.T) {
	ctx, span := StartServiceSpan(context.Background(), "PreviewService", "Preview")
	defer span.End()

	if trace.FromContext(ctx) != span {
		t.Fatal("Expected span to be in context")
	}
}

func TestEndSpan(t *testing.T) {
	exp := withExporter(t)

	_, span := trace.StartSpan(context.Background(), "ok-span", sampled())
	EndSpan(span, nil)

	_, span = trace.StartSpan(context.Background(), "failed-span", sampled())
	EndSpan(span, errors.New("render failed"))

	if s := exp.find("ok-span"); s == nil || s.Status.Code != trace.StatusCodeOK {
		t.Errorf("Expected ok-span with OK status, got %+v", s)
	}
	if s := exp.find("failed-span"); s == nil || s.Status.Message != "render failed" {
		t.Errorf("Expected failed-span with error status, got %+v", s)
	}
}

func TestTraceMethodWithResult(t *testing.T) {
	result, err := TraceMethodWithResult(context.Background(), "svc", "ok", func(ctx context.Context) (int, error) {
		if trace.FromContext(ctx) == nil {
			t.Error("Expected span in context")
		}
		return 42, nil
	})
	if err != nil || result != 42 {
		t.Errorf("Expected 42 and no error, got %d, %v", result, err)
	}

	testErr := errors.New("boom")
	_, err = TraceMethodWithResult(context.Background(), "svc", "fail", func(ctx context.Context) (string, error) {
		return "", testErr
	})
	if err != testErr {
		t.Errorf("Expected error %v, got %v", testErr, err)
	}
}

func TestAddAttribute(t *testing.T) {
	// No span in context must not panic
	AddAttribute(context.Background(), "key", "value")

	exp := withExporter(t)
	ctx, span := trace.StartSpan(context.Background(), "attrs", sampled())
	AddAttribute(ctx, "channel", "email")
	AddAttribute(ctx, "blocks", 3)
	AddAttribute(ctx, "blocks64", int64(4))
	AddAttribute(ctx, "cached", true)
	AddAttribute(ctx, "ratio", 0.5)
	span.End()

	s := exp.find("attrs")
	if s == nil {
		t.Fatal("Expected exported span")
	}
	want := map[string]interface{}{
		"channel":  "email",
		"blocks":   int64(3),
		"blocks64": int64(4),
		"cached":   true,
		"ratio":    "0.5",
	}
	for k, v := range want {
		if s.Attributes[k] != v {
			t.Errorf("attribute %s: expected %v, got %v", k, v, s.Attributes[k])
		}
	}
}

func TestMarkSpanError(t *testing.T) {
	MarkSpanError(context.Background(), errors.New("no span"))

	exp := withExporter(t)
	ctx, span := trace.StartSpan(context.Background(), "marked", sampled())
	MarkSpanError(ctx, nil)
	MarkSpanError(ctx, errors.New("not found"))
	span.End()

	if s := exp.find("marked"); s == nil || s.Status.Message != "not found" {
		t.Errorf("Expected marked span with error status, got %+v", s)
	}
}
