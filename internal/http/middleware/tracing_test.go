package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

type spanRecorder struct {
	mu    sync.Mutex
	spans []*trace.SpanData
}

func (r *spanRecorder) ExportSpan(s *trace.SpanData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = append(r.spans, s)
}

func (r *spanRecorder) last() *trace.SpanData {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.spans) == 0 {
		return nil
	}
	return r.spans[len(r.spans)-1]
}

func withRecorder(t *testing.T) *spanRecorder {
	rec := &spanRecorder{}
	trace.RegisterExporter(rec)
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	t.Cleanup(func() {
		trace.UnregisterExporter(rec)
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(1e-4)})
	})
	return rec
}

func TestTracingMiddleware(t *testing.T) {
	rec := withRecorder(t)

	handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, trace.FromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/notificationRules.list?entity_type=riesgo", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	span := rec.last()
	require.NotNil(t, span)
	assert.Equal(t, "GET /api/notificationRules.list", span.Name)
	assert.Equal(t, "/api/notificationRules.list", span.Attributes["http.path"])
	assert.Equal(t, "entity_type=riesgo", span.Attributes["http.query"])
	assert.Equal(t, "req-1", span.Attributes["http.request_id"])
	assert.Equal(t, int64(200), span.Attributes["http.status_code"])
}

func TestTracingMiddleware_ErrorStatus(t *testing.T) {
	rec := withRecorder(t)

	handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notificationRules.get?id=x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	span := rec.last()
	require.NotNil(t, span)
	assert.NotEqual(t, int32(trace.StatusCodeOK), span.Status.Code)
}
