package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/task-tracker/internal/config"
)

// Category names a logger whose level is controlled independently.
type Category string

// Known logger categories
const (
	CategoryRequest Category = "request-logger"
	CategoryTask    Category = "task-logger"
)

// Log file names inside the configured log directory
const (
	requestLogFile = "requests.log"
	taskLogFile    = "tasks.log"
)

var (
	// ErrUnknownCategory is returned for a logger name that is not a Category.
	ErrUnknownCategory = errors.New("unknown logger category")

	// ErrInvalidLevel is returned for a level name that cannot be parsed.
	ErrInvalidLevel = errors.New("invalid log level")
)

// ParseCategory converts s into a known Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryRequest, CategoryTask:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// ParseLevel parses a level name (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// LevelName returns the upper-case name of a level, e.g. "INFO".
func LevelName(level slog.Level) string {
	return level.String()
}

// Levels holds the runtime adjustable threshold of every category.
// It is safe for concurrent use.
type Levels struct {
	vars map[Category]*slog.LevelVar
}

// NewLevels creates a Levels with every known category at info level,
// overridden by initial.
func NewLevels(initial map[Category]slog.Level) *Levels {
	l := &Levels{vars: make(map[Category]*slog.LevelVar, 2)}
	for _, c := range []Category{CategoryRequest, CategoryTask} {
		v := new(slog.LevelVar)
		v.Set(slog.LevelInfo)
		if level, ok := initial[c]; ok {
			v.Set(level)
		}
		l.vars[c] = v
	}
	return l
}

// Level returns the current threshold of c.
func (l *Levels) Level(c Category) (slog.Level, error) {
	v, ok := l.vars[c]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return v.Level(), nil
}

// SetLevel changes the threshold of c and returns the previous one.
func (l *Levels) SetLevel(c Category, level slog.Level) (slog.Level, error) {
	v, ok := l.vars[c]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	old := v.Level()
	v.Set(level)
	return old, nil
}

// leveler returns the slog.Leveler backing c, or nil for unknown categories.
func (l *Levels) leveler(c Category) slog.Leveler {
	return l.vars[c]
}

// Counter reports the current inbound request number.
type Counter interface {
	Value() int64
}

// Loggers bundles the category loggers and the levels controlling them.
type Loggers struct {
	Request *slog.Logger
	Task    *slog.Logger
	Levels  *Levels

	closers []io.Closer
	// previousDefault is the slog default replaced by Setup.
	previousDefault *slog.Logger
}

// New builds Loggers writing request records to requestOut and task records
// to taskOut. Records are stamped with the value of requests.
func New(requestOut, taskOut io.Writer, levels *Levels, requests Counter) *Loggers {
	return &Loggers{
		Request: newCategoryLogger(requestOut, levels, CategoryRequest, requests),
		Task:    newCategoryLogger(taskOut, levels, CategoryTask, requests),
		Levels:  levels,
	}
}

// Setup initializes the application's logging system based on the provided
// configuration. The request logger writes to stdout and requests.log, the
// task logger to tasks.log, both inside cfg.Dir which is created if missing.
// The request logger becomes the slog default until Close.
//
// Returns the configured loggers and any error encountered during setup.
func Setup(cfg config.LogConfig, requests Counter) (*Loggers, error) {
	requestLevel, err := ParseLevel(cfg.RequestLevel)
	if err != nil {
		return nil, fmt.Errorf("request logger: %w", err)
	}
	taskLevel, err := ParseLevel(cfg.TaskLevel)
	if err != nil {
		return nil, fmt.Errorf("task logger: %w", err)
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	requestFile, err := openLogFile(filepath.Join(cfg.Dir, requestLogFile))
	if err != nil {
		return nil, err
	}
	taskFile, err := openLogFile(filepath.Join(cfg.Dir, taskLogFile))
	if err != nil {
		_ = requestFile.Close()
		return nil, err
	}

	levels := NewLevels(map[Category]slog.Level{
		CategoryRequest: requestLevel,
		CategoryTask:    taskLevel,
	})

	loggers := New(io.MultiWriter(os.Stdout, requestFile), taskFile, levels, requests)
	loggers.closers = []io.Closer{requestFile, taskFile}

	loggers.previousDefault = slog.Default()
	slog.SetDefault(loggers.Request)

	return loggers, nil
}

// Close releases the log files opened by Setup and reinstates the slog
// default that Setup replaced, so later records do not target closed files.
func (l *Loggers) Close() error {
	if l.previousDefault != nil {
		slog.SetDefault(l.previousDefault)
		l.previousDefault = nil
	}

	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return errors.Join(errs...)
}

func newCategoryLogger(out io.Writer, levels *Levels, c Category, requests Counter) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: levels.leveler(c),
	})
	if requests != nil {
		handler = NewRequestNumberHandler(handler, requests)
	}
	return slog.New(handler).With(slog.String("logger", string(c)))
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

type contextKey struct{}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or def.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return def
}
