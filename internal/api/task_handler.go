package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/service"
	"github.com/phrazzld/task-tracker/internal/store"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Health handles GET /task requests.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ResultResponse{Result: "OK"})
}

// CreateTask handles POST /task/create requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		log.Debug("invalid task details", slog.String("reason", SanitizeValidationError(err)))
		HandleAPIError(w, r, fmt.Errorf("%w: %w", domain.ErrMissingField, err), msgInvalidDetails)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.toParams())
	if err != nil {
		message := ""
		if store.IsDuplicateError(err) {
			message = fmt.Sprintf("The title [%s] already exists in the system", req.Title)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{
		Result: "A new task has been added to the system",
		TaskID: task.ID,
	})
}

// GetTaskCount handles GET /task/size requests.
func (h *TaskHandler) GetTaskCount(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParsePriorityFilter(shared.QueryParam(r, paramPriority))
	if err != nil {
		HandleAPIError(w, r, err, msgInvalidPriority)
		return
	}

	count, err := h.taskService.CountTasks(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ids := count.IDs
	if ids == nil {
		ids = []int64{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TaskCountResponse{Result: count.Count, TasksID: ids})
}

// GetTasksData handles GET /task/data requests. priority defaults to ALL
// and sortBy to ID.
func (h *TaskHandler) GetTasksData(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParsePriorityFilter(queryOrDefault(r, paramPriority, string(domain.PriorityAll)))
	if err != nil {
		HandleAPIError(w, r, err, msgInvalidPriorityOrKey)
		return
	}
	key, err := domain.ParseSortKey(queryOrDefault(r, paramSortBy, string(domain.SortByID)))
	if err != nil {
		HandleAPIError(w, r, err, msgInvalidPriorityOrKey)
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter, key)
	if err != nil {
		HandleAPIError(w, r, err, msgInvalidPriorityOrKey)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// UpdatePriority handles PUT /task/priority requests.
func (h *TaskHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	id, notFoundMsg, err := getQueryTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, notFoundMsg)
		return
	}

	priority := domain.Priority(shared.QueryParam(r, paramPriority))
	change, err := h.taskService.UpdatePriority(r.Context(), id, priority)
	if err != nil {
		message := msgInvalidPriority
		if store.IsNotFoundError(err) {
			message = taskNotFoundMessage(id)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResultResponse{
		Result: fmt.Sprintf("The priority of task %d was updated from %s to %s",
			change.TaskID, change.Old, change.New),
	})
}

// SearchTasks handles GET /task/search requests.
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.SearchTasks(r.Context(), shared.QueryParam(r, paramKeyword))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// DeleteTask handles DELETE /task requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, notFoundMsg, err := getQueryTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, notFoundMsg)
		return
	}

	remaining, err := h.taskService.DeleteTask(r.Context(), id)
	if err != nil {
		message := ""
		if store.IsNotFoundError(err) {
			message = taskNotFoundMessage(id)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Result:  fmt.Sprintf("The number of tasks left in the system is: %d", remaining),
		Message: fmt.Sprintf("Task with Id %d deleted successfully.", id),
	})
}
