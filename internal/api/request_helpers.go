package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/store"
)

// Query parameter names
const (
	paramID          = "id"
	paramPriority    = "priority"
	paramSortBy      = "sortBy"
	paramKeyword     = "keyword"
	paramLoggerName  = "logger-name"
	paramLoggerLevel = "logger-level"
)

// getQueryTaskID extracts the task ID from the id query parameter.
// A missing or non-numeric ID addresses no task, so the error reports
// store.ErrTaskNotFound along with the client message naming the raw value.
func getQueryTaskID(r *http.Request) (int64, string, error) {
	raw := shared.QueryParam(r, paramID)
	id, err := shared.QueryInt64(r, paramID)
	if err != nil {
		return 0, taskNotFoundMessage(raw), fmt.Errorf("%w: %w", store.ErrTaskNotFound, err)
	}
	return id, "", nil
}

// queryOrDefault returns the named query parameter, or def when it is empty.
func queryOrDefault(r *http.Request, name, def string) string {
	if v := shared.QueryParam(r, name); v != "" {
		return v
	}
	return def
}

func taskNotFoundMessage(id any) string {
	return fmt.Sprintf("Task with Id %v not found.", id)
}
