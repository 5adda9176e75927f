package api

import (
	"github.com/phrazzld/task-tracker/internal/domain"
)

// CreateTaskRequest defines the payload for the task creation endpoint.
// Deadline is in milliseconds since the Unix epoch.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Deadline    int64  `json:"deadline"    validate:"required"`
	Priority    string `json:"priority"    validate:"required"`
}

// toParams converts the request into service input.
func (r CreateTaskRequest) toParams() domain.NewTaskParams {
	return domain.NewTaskParams{
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
		Priority:    domain.Priority(r.Priority),
	}
}

// ResultResponse is the body of endpoints answering with a single message.
type ResultResponse struct {
	Result string `json:"result"`
}

// CreateTaskResponse is the body returned after a task is created.
type CreateTaskResponse struct {
	Result string `json:"result"`
	TaskID int64  `json:"taskId"`
}

// TaskCountResponse is the body of the task count endpoint.
type TaskCountResponse struct {
	Result  int     `json:"result"`
	TasksID []int64 `json:"tasksID"`
}

// DeleteTaskResponse is the body returned after a task is deleted.
type DeleteTaskResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// TaskResponse represents a task in response bodies.
type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    int64  `json:"deadline"`
	Priority    string `json:"priority"`
}

func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Priority:    string(t.Priority),
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
