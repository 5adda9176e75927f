package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
)

const tracerName = "github.com/phrazzld/task-tracker/internal/service"

// TaskCount is the result of counting tasks by priority.
type TaskCount struct {
	Count int
	IDs   []int64
}

// PriorityChange describes a completed priority update.
type PriorityChange struct {
	TaskID int64
	Old    domain.Priority
	New    domain.Priority
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask validates and stores a new task.
	CreateTask(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)

	// CountTasks counts the tasks passing filter.
	CountTasks(ctx context.Context, filter domain.PriorityFilter) (TaskCount, error)

	// ListTasks returns the tasks passing filter ordered by key.
	ListTasks(ctx context.Context, filter domain.PriorityFilter, key domain.SortKey) ([]domain.Task, error)

	// SearchTasks returns the tasks whose title or description contains keyword.
	SearchTasks(ctx context.Context, keyword string) ([]domain.Task, error)

	// UpdatePriority changes the priority of a task.
	UpdatePriority(ctx context.Context, id int64, priority domain.Priority) (PriorityChange, error)

	// DeleteTask removes a task and returns the number of tasks left.
	DeleteTask(ctx context.Context, id int64) (int, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
	tracer trace.Tracer
}

// NewTaskService creates a new TaskService. logger should be the task
// category logger.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("%w: tasks", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
		tracer: otel.Tracer(tracerName),
	}, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.CreateTask",
		trace.WithAttributes(attribute.String("task.priority", string(params.Priority))))
	defer span.End()

	s.logger.InfoContext(ctx, "creating new task", slog.String("title", params.Title))

	before, err := s.tasks.Len(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "create_task", "failed to count tasks", err)
	}

	task, err := s.tasks.Create(ctx, params)
	if err != nil {
		return nil, s.fail(ctx, span, "create_task", "failed to create task", err)
	}

	span.SetAttributes(attribute.Int64("task.id", task.ID))
	s.logger.DebugContext(ctx, "task created",
		slog.Int("tasks_before", before),
		slog.Int64("task_id", task.ID),
		slog.Time("deadline", task.DeadlineTime()))

	return task, nil
}

// CountTasks implements TaskService.
func (s *taskServiceImpl) CountTasks(ctx context.Context, filter domain.PriorityFilter) (TaskCount, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.CountTasks",
		trace.WithAttributes(attribute.String("task.priority_filter", string(filter))))
	defer span.End()

	count, ids, err := s.tasks.CountByPriority(ctx, filter)
	if err != nil {
		return TaskCount{}, s.fail(ctx, span, "count_tasks", "failed to count tasks", err)
	}

	total, err := s.tasks.Len(ctx)
	if err != nil {
		return TaskCount{}, s.fail(ctx, span, "count_tasks", "failed to count tasks", err)
	}

	s.logger.InfoContext(ctx, "tasks counted",
		slog.String("priority", string(filter)),
		slog.Int("count", count),
		slog.Int("total_tasks", total))

	return TaskCount{Count: count, IDs: ids}, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	filter domain.PriorityFilter,
	key domain.SortKey,
) ([]domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.ListTasks",
		trace.WithAttributes(
			attribute.String("task.priority_filter", string(filter)),
			attribute.String("task.sort_by", string(key)),
		))
	defer span.End()

	s.logger.InfoContext(ctx, "extracting tasks content",
		slog.String("priority", string(filter)),
		slog.String("sort_by", string(key)))

	tasks, err := s.tasks.List(ctx, filter, key)
	if err != nil {
		return nil, s.fail(ctx, span, "list_tasks", "failed to list tasks", err)
	}

	total, err := s.tasks.Len(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list_tasks", "failed to count tasks", err)
	}

	s.logger.DebugContext(ctx, "tasks extracted",
		slog.Int("total_tasks", total),
		slog.Int("result_count", len(tasks)))

	return tasks, nil
}

// SearchTasks implements TaskService.
func (s *taskServiceImpl) SearchTasks(ctx context.Context, keyword string) ([]domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.SearchTasks")
	defer span.End()

	s.logger.InfoContext(ctx, "searching tasks", slog.String("keyword", keyword))

	tasks, err := s.tasks.Search(ctx, keyword)
	if err != nil {
		return nil, s.fail(ctx, span, "search_tasks", "failed to search tasks", err)
	}

	s.logger.DebugContext(ctx, "tasks searched", slog.Int("result_count", len(tasks)))

	return tasks, nil
}

// UpdatePriority implements TaskService.
func (s *taskServiceImpl) UpdatePriority(
	ctx context.Context,
	id int64,
	priority domain.Priority,
) (PriorityChange, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.UpdatePriority",
		trace.WithAttributes(
			attribute.Int64("task.id", id),
			attribute.String("task.priority", string(priority)),
		))
	defer span.End()

	s.logger.InfoContext(ctx, "updating task priority",
		slog.Int64("task_id", id),
		slog.String("new_priority", string(priority)))

	old, err := s.tasks.UpdatePriority(ctx, id, priority)
	if err != nil {
		return PriorityChange{}, s.fail(ctx, span, "update_priority", "failed to update priority", err)
	}

	s.logger.DebugContext(ctx, "task priority changed",
		slog.Int64("task_id", id),
		slog.String("old_priority", string(old)),
		slog.String("new_priority", string(priority)))

	return PriorityChange{TaskID: id, Old: old, New: priority}, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (int, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.DeleteTask",
		trace.WithAttributes(attribute.Int64("task.id", id)))
	defer span.End()

	remaining, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return remaining, s.fail(ctx, span, "delete_task", "failed to delete task", err)
	}

	s.logger.InfoContext(ctx, "task removed", slog.Int64("task_id", id))
	s.logger.DebugContext(ctx, "tasks left after removal",
		slog.Int64("task_id", id),
		slog.Int("remaining", remaining))

	return remaining, nil
}

// fail records err on the span and the task logger and returns it wrapped
// as needed.
func (s *taskServiceImpl) fail(ctx context.Context, span trace.Span, operation, message string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, message)

	s.logger.ErrorContext(ctx, message,
		slog.String("operation", operation),
		slog.String("error", err.Error()))

	return NewTaskServiceError(operation, message, err)
}
