package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Priority classifies the urgency of a task.
type Priority string

// Possible priority values
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Valid reports whether p is one of HIGH, MEDIUM or LOW.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// PriorityFilter selects tasks by priority. PriorityAll matches every task.
type PriorityFilter string

// PriorityAll disables priority filtering.
const PriorityAll PriorityFilter = "ALL"

// ParsePriorityFilter converts s into a PriorityFilter.
// Returns ErrInvalidPriorityFilter for anything but ALL, HIGH, MEDIUM or LOW.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	f := PriorityFilter(s)
	if f == PriorityAll || Priority(s).Valid() {
		return f, nil
	}
	return "", ErrInvalidPriorityFilter
}

// Matches reports whether a task with priority p passes the filter.
func (f PriorityFilter) Matches(p Priority) bool {
	return f == PriorityAll || Priority(f) == p
}

// SortKey names the field a task listing is ordered by.
type SortKey string

// Supported sort keys
const (
	SortByID       SortKey = "ID"
	SortByDeadline SortKey = "DEADLINE"
	SortByTitle    SortKey = "TITLE"
)

// ParseSortKey converts s into a SortKey.
// Returns ErrInvalidSortKey for anything but ID, DEADLINE or TITLE.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByID, SortByDeadline, SortByTitle:
		return k, nil
	}
	return "", ErrInvalidSortKey
}

// Task is a unit of tracked work. The ID is assigned by the store and never
// changes; only the priority may be modified after creation. Deadline is
// expressed in milliseconds since the Unix epoch.
type Task struct {
	ID          int64    `json:"id"          validate:"gte=1"`
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Deadline    int64    `json:"deadline"`
	Priority    Priority `json:"priority"    validate:"oneof=HIGH MEDIUM LOW"`
}

// DeadlineTime returns the deadline as a time.Time.
func (t Task) DeadlineTime() time.Time {
	return time.UnixMilli(t.Deadline)
}

// MatchesKeyword reports whether keyword occurs in the title or description,
// ignoring case.
func (t Task) MatchesKeyword(keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(t.Title), k) ||
		strings.Contains(strings.ToLower(t.Description), k)
}

// NewTaskParams holds the client supplied fields of a task to be created.
type NewTaskParams struct {
	Title       string
	Description string
	Deadline    int64
	Priority    Priority
}

// Validate checks the parameters against now. Checks run in a fixed order:
// missing fields, then deadline, then priority.
func (p NewTaskParams) Validate(now time.Time) error {
	switch {
	case p.Title == "":
		return NewValidationError("title", "is required", ErrMissingField)
	case p.Description == "":
		return NewValidationError("description", "is required", ErrMissingField)
	case p.Deadline == 0:
		return NewValidationError("deadline", "is required", ErrMissingField)
	case p.Priority == "":
		return NewValidationError("priority", "is required", ErrMissingField)
	}

	if p.Deadline <= now.UnixMilli() {
		return ErrDeadlinePassed
	}

	if !p.Priority.Valid() {
		return NewValidationError("priority", "must be one of HIGH, MEDIUM, LOW", ErrInvalidPriority)
	}

	return nil
}

// SortTasks orders tasks in place by key. Unknown keys leave the order as is.
func SortTasks(tasks []Task, key SortKey) {
	var compare func(a, b Task) int
	switch key {
	case SortByID:
		compare = func(a, b Task) int { return cmp.Compare(a.ID, b.ID) }
	case SortByDeadline:
		compare = func(a, b Task) int { return cmp.Compare(a.Deadline, b.Deadline) }
	case SortByTitle:
		compare = func(a, b Task) int { return strings.Compare(a.Title, b.Title) }
	default:
		return
	}
	slices.SortStableFunc(tasks, compare)
}
