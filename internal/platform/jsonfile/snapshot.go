package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
)

// Snapshot is the on-disk document.
type Snapshot struct {
	RequestsCounter int64         `json:"requestsCounter" validate:"gte=0"`
	TasksIDCounter  int64         `json:"tasksIdCounter"  validate:"gte=1"`
	Tasks           []domain.Task `json:"tasks"           validate:"dive"`
}

// RequestCounter is the request counter captured in and restored from snapshots.
type RequestCounter interface {
	Value() int64
	Set(v int64)
}

// SnapshotStore reads and writes snapshots at a fixed path.
type SnapshotStore struct {
	path     string
	requests RequestCounter
	logger   *slog.Logger
	validate *validator.Validate
}

// NewSnapshotStore creates a SnapshotStore for the file at path.
func NewSnapshotStore(path string, requests RequestCounter, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &SnapshotStore{
		path:     path,
		requests: requests,
		logger:   logger.With(slog.String("component", "snapshot_store")),
		validate: validator.New(),
	}
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load restores target and the request counter from the snapshot file and
// returns the persisted next identifier.
//
// If no file exists, target is reset to empty, an empty snapshot with next
// identifier 1 is written immediately, and 1 is returned.
// A file that cannot be read or does not hold a valid snapshot yields an
// error wrapping store.ErrFatalIO.
func (s *SnapshotStore) Load(target store.SnapshotSource) (int64, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("no snapshot found, starting with an empty store",
			slog.String("path", s.path))

		target.Restore(nil, 1)
		if err := s.Save(nil, 1); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, fatal("load", "failed to read file", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, fatal("load", "failed to parse file", err)
	}
	if err := s.validate.Struct(snap); err != nil {
		return 0, fatal("load", "invalid snapshot content", err)
	}

	s.requests.Set(snap.RequestsCounter)
	target.Restore(snap.Tasks, snap.TasksIDCounter)

	s.logger.Info("snapshot loaded",
		slog.String("path", s.path),
		slog.Int("task_count", len(snap.Tasks)),
		slog.Int64("next_id", snap.TasksIDCounter),
		slog.Int64("requests_counter", snap.RequestsCounter))

	return snap.TasksIDCounter, nil
}

// Save writes tasks, nextID and the current request count, replacing any
// previous snapshot in one step. The parent directory is created if missing.
// Failures yield an error wrapping store.ErrFatalIO.
func (s *SnapshotStore) Save(tasks []domain.Task, nextID int64) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}

	snap := Snapshot{
		RequestsCounter: s.requests.Value(),
		TasksIDCounter:  nextID,
		Tasks:           tasks,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fatal("save", "failed to encode snapshot", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fatal("save", "failed to write file", err)
	}

	s.logger.Info("snapshot saved",
		slog.String("path", s.path),
		slog.Int("task_count", len(tasks)),
		slog.Int64("next_id", nextID))

	return nil
}

// SaveFrom captures the state of src and saves it.
func (s *SnapshotStore) SaveFrom(src store.SnapshotSource) error {
	tasks, nextID := src.Snapshot()
	return s.Save(tasks, nextID)
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func fatal(operation, message string, err error) error {
	return store.NewStoreError("snapshot", operation, message, fmt.Errorf("%w: %w", store.ErrFatalIO, err))
}
