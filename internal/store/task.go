package store

import (
	"context"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Implementations must serialize every call: no operation may observe
// another one half applied.
type TaskStore interface {
	// Create validates params, checks that no task has the same title and
	// appends a new task with the next identifier.
	// Returns domain validation errors, domain.ErrDeadlinePassed or
	// ErrTitleExists; the store is unchanged on any error.
	Create(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)

	// CountByPriority returns the number of tasks passing the filter and
	// their IDs in store order.
	CountByPriority(ctx context.Context, filter domain.PriorityFilter) (int, []int64, error)

	// List returns the tasks passing the filter ordered by key.
	// The returned slice is a copy; callers may modify it freely.
	List(ctx context.Context, filter domain.PriorityFilter, key domain.SortKey) ([]domain.Task, error)

	// Search returns the tasks whose title or description contains keyword,
	// ignoring case, in store order.
	// Returns domain.ErrEmptyKeyword if keyword is empty.
	Search(ctx context.Context, keyword string) ([]domain.Task, error)

	// UpdatePriority replaces the priority of the task with the given ID and
	// returns the previous value.
	// Returns ErrTaskNotFound before considering the priority, then
	// domain.ErrInvalidPriority if the new value is not valid.
	UpdatePriority(ctx context.Context, id int64, priority domain.Priority) (domain.Priority, error)

	// Delete removes the task with the given ID and returns the number of
	// tasks left. Returns ErrTaskNotFound if no task has that ID.
	Delete(ctx context.Context, id int64) (int, error)

	// Len returns the total number of tasks.
	Len(ctx context.Context) (int, error)
}

// SnapshotSource is implemented by stores whose full state can be captured
// and replaced wholesale by a persistence adapter.
type SnapshotSource interface {
	// Snapshot returns a copy of every task in store order and the next
	// identifier to be assigned.
	Snapshot() ([]domain.Task, int64)

	// Restore replaces the store contents. nextID is raised above the highest
	// restored ID if needed so identifiers are never reused.
	Restore(tasks []domain.Task, nextID int64)
}
