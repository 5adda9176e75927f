package api

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/logs/level?logger-name=task-logger", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":"task-logger is in level DEBUG"}`, rec.Body.String())
}

func TestSetLevel(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPut, "/logs/level?logger-name=request-logger&logger-level=ERROR", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":"The log level has changed from level DEBUG to level ERROR"}`, rec.Body.String())

	level, err := api.loggers.Levels.Level(logger.CategoryRequest)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)

	rec = api.do(t, http.MethodGet, "/logs/level?logger-name=request-logger", "")
	assert.JSONEq(t, `{"result":"request-logger is in level ERROR"}`, rec.Body.String())

	taskLevel, err := api.loggers.Levels.Level(logger.CategoryTask)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, taskLevel, "other loggers are unaffected")
}

func TestSetLevelSilencesLowerRecords(t *testing.T) {
	api := newTestAPI(t)

	api.do(t, http.MethodPut, "/logs/level?logger-name=request-logger&logger-level=ERROR", "")
	api.loggers.RequestBuf.Reset()

	api.do(t, http.MethodGet, "/task", "")
	assert.NotContains(t, api.loggers.RequestBuf.String(), "incoming request")
}

func TestLevelErrors(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		query       string
		expectedMsg string
	}{
		{"get unknown logger", http.MethodGet, "logger-name=db-logger", "Invalid logger name"},
		{"get missing logger", http.MethodGet, "", "Invalid logger name"},
		{"set unknown logger", http.MethodPut, "logger-name=db-logger&logger-level=INFO", "Invalid logger name"},
		{"set lower case level", http.MethodPut, "logger-name=task-logger&logger-level=info", "Invalid logger level"},
		{"set warn level", http.MethodPut, "logger-name=task-logger&logger-level=WARN", "Invalid logger level"},
		{"set missing level", http.MethodPut, "logger-name=task-logger", "Invalid logger level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			rec := api.do(t, tt.method, "/logs/level?"+tt.query, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.expectedMsg, decodeMap(t, rec)["errorMessage"])
			logger.AssertLogField(t, api.loggers.RequestBuf, "level", "ERROR")
		})
	}
}

func TestNotFound(t *testing.T) {
	api := newTestAPI(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/task"},
		{http.MethodPatch, "/logs/level"},
	} {
		rec := api.do(t, tc.method, tc.target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.target)
		assert.Equal(t, "Route not found", decodeMap(t, rec)["errorMessage"])
	}
	logger.AssertLogField(t, api.loggers.RequestBuf, "level", "ERROR")
}
