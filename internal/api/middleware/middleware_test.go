package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/counter"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	loggers := logger.NewTestLoggers(t, nil)

	var seenTraceID string
	handler := NewTraceMiddleware(loggers.Request)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/task", nil))

	require.NotEmpty(t, seenTraceID)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	logger.AssertLogField(t, loggers.RequestBuf, "msg", "request started")
	logger.AssertLogField(t, loggers.RequestBuf, "msg", "inside handler")
	logger.AssertLogField(t, loggers.RequestBuf, "trace_id", seenTraceID)
}

func TestRequestCounterMiddleware(t *testing.T) {
	requests := &counter.RequestCounter{}
	loggers := logger.NewTestLoggers(t, requests)

	chain := NewTraceMiddleware(loggers.Request)(
		NewRequestCounterMiddleware(requests)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})),
	)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/task/size?priority=ALL", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, int64(3), requests.Value())

	entries, err := loggers.RequestBuf.GetLogEntries()
	require.NoError(t, err)

	var incoming, durations int
	for _, e := range entries {
		switch e["msg"] {
		case "incoming request":
			incoming++
			assert.Equal(t, "INFO", e["level"])
			assert.Equal(t, "/task/size", e["resource"])
			assert.Equal(t, "GET", e["method"])
			assert.Equal(t, e["request_id"], e[logger.RequestNumberKey])
		case "request duration":
			durations++
			assert.Equal(t, "DEBUG", e["level"])
			assert.Equal(t, float64(http.StatusTeapot), e["status"])
			assert.Contains(t, e, "duration_ms")
		}
	}
	assert.Equal(t, 3, incoming)
	assert.Equal(t, 3, durations)
}
