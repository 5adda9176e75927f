package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
)

// Compile-time checks
var (
	_ store.TaskStore      = (*TaskStore)(nil)
	_ store.SnapshotSource = (*TaskStore)(nil)
)

// TaskStore keeps tasks in memory in insertion order.
type TaskStore struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int64
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock overrides the clock used to check deadlines at creation time.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// NewTaskStore creates an empty TaskStore whose first task gets ID 1.
func NewTaskStore(logger *slog.Logger, opts ...Option) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &TaskStore{
		tasks:  make([]domain.Task, 0),
		nextID: 1,
		now:    time.Now,
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error) {
	if err := params.Validate(s.now()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.Title == params.Title {
			return nil, store.ErrTitleExists
		}
	}

	task := domain.Task{
		ID:          s.nextID,
		Title:       params.Title,
		Description: params.Description,
		Deadline:    params.Deadline,
		Priority:    params.Priority,
	}
	s.nextID++
	s.tasks = append(s.tasks, task)

	return &task, nil
}

// CountByPriority implements store.TaskStore.
func (s *TaskStore) CountByPriority(ctx context.Context, filter domain.PriorityFilter) (int, []int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0)
	for _, t := range s.tasks {
		if filter.Matches(t.Priority) {
			ids = append(ids, t.ID)
		}
	}
	return len(ids), ids, nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context, filter domain.PriorityFilter, key domain.SortKey) ([]domain.Task, error) {
	s.mu.Lock()
	result := s.filterLocked(func(t domain.Task) bool { return filter.Matches(t.Priority) })
	s.mu.Unlock()

	domain.SortTasks(result, key)
	return result, nil
}

// Search implements store.TaskStore.
func (s *TaskStore) Search(ctx context.Context, keyword string) ([]domain.Task, error) {
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterLocked(func(t domain.Task) bool { return t.MatchesKeyword(keyword) }), nil
}

// UpdatePriority implements store.TaskStore.
func (s *TaskStore) UpdatePriority(ctx context.Context, id int64, priority domain.Priority) (domain.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return "", store.ErrTaskNotFound
	}

	if !priority.Valid() {
		return "", domain.NewValidationError("priority", "must be one of HIGH, MEDIUM, LOW", domain.ErrInvalidPriority)
	}

	old := s.tasks[i].Priority
	s.tasks[i].Priority = priority
	return old, nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return len(s.tasks), store.ErrTaskNotFound
	}

	s.tasks = slices.Delete(s.tasks, i, i+1)
	return len(s.tasks), nil
}

// Len implements store.TaskStore.
func (s *TaskStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks), nil
}

// Snapshot implements store.SnapshotSource.
func (s *TaskStore) Snapshot() ([]domain.Task, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks), s.nextID
}

// Restore implements store.SnapshotSource.
func (s *TaskStore) Restore(tasks []domain.Task, nextID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor := int64(1)
	for _, t := range tasks {
		if t.ID >= floor {
			floor = t.ID + 1
		}
	}
	if nextID < floor {
		s.logger.Warn("persisted id counter is behind stored tasks, raising it",
			slog.Int64("persisted_next_id", nextID),
			slog.Int64("next_id", floor))
		nextID = floor
	}

	s.tasks = append(make([]domain.Task, 0, len(tasks)), tasks...)
	s.nextID = nextID
}

// filterLocked returns a copy of the tasks accepted by keep. s.mu must be held.
func (s *TaskStore) filterLocked(keep func(domain.Task) bool) []domain.Task {
	result := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// indexLocked returns the position of the task with the given ID or -1.
// s.mu must be held.
func (s *TaskStore) indexLocked(id int64) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}
