package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
)

// settableLevels are the level names accepted by PUT /logs/level.
var settableLevels = map[string]slog.Level{
	"ERROR": slog.LevelError,
	"INFO":  slog.LevelInfo,
	"DEBUG": slog.LevelDebug,
}

// LogsHandler reads and changes logger levels at runtime.
type LogsHandler struct {
	levels *logger.Levels
}

// NewLogsHandler creates a new LogsHandler
func NewLogsHandler(levels *logger.Levels) *LogsHandler {
	if levels == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("levels cannot be nil for LogsHandler")
	}
	return &LogsHandler{levels: levels}
}

// GetLevel handles GET /logs/level requests.
func (h *LogsHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	name := shared.QueryParam(r, paramLoggerName)
	category, err := logger.ParseCategory(name)
	if err != nil {
		handleRequestError(w, r, err, msgInvalidLoggerName)
		return
	}

	level, err := h.levels.Level(category)
	if err != nil {
		handleRequestError(w, r, err, msgInvalidLoggerName)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResultResponse{
		Result: fmt.Sprintf("%s is in level %s", category, logger.LevelName(level)),
	})
}

// SetLevel handles PUT /logs/level requests. Level names are upper case.
func (h *LogsHandler) SetLevel(w http.ResponseWriter, r *http.Request) {
	category, err := logger.ParseCategory(shared.QueryParam(r, paramLoggerName))
	if err != nil {
		handleRequestError(w, r, err, msgInvalidLoggerName)
		return
	}

	rawLevel := shared.QueryParam(r, paramLoggerLevel)
	level, ok := settableLevels[rawLevel]
	if !ok {
		handleRequestError(w, r, fmt.Errorf("%w: %q", logger.ErrInvalidLevel, rawLevel), msgInvalidLoggerLevel)
		return
	}

	old, err := h.levels.SetLevel(category, level)
	if err != nil {
		handleRequestError(w, r, err, msgInvalidLoggerName)
		return
	}

	logger.FromContext(r.Context()).Info("logger level changed",
		slog.String("logger_name", string(category)),
		slog.String("old_level", logger.LevelName(old)),
		slog.String("new_level", logger.LevelName(level)))

	shared.RespondWithJSON(w, r, http.StatusOK, ResultResponse{
		Result: fmt.Sprintf("The log level has changed from level %s to level %s",
			logger.LevelName(old), logger.LevelName(level)),
	})
}

// NotFound handles requests matching no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	handleRequestError(w, r, errRouteNotFound, msgRouteNotFound)
}

// MethodNotAllowed handles requests to a known path with an unsupported method.
// Like unmatched routes they are reported as not found.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handleRequestError(w, r, errRouteNotFound, msgRouteNotFound)
}
