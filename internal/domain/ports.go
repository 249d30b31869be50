package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store (schema, file) if it doesn't exist.
	Initialize(ctx context.Context) error
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	// ListTasks returns every task ordered by start date.
	ListTasks(ctx context.Context) ([]*Task, error)

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if absent.
	GetTask(ctx context.Context, id string) (*Task, error)

	// SaveTask creates or replaces a task (last write wins).
	SaveTask(ctx context.Context, task *Task) error

	// DeleteTask removes a task by ID. Deleting a missing task is not an error.
	DeleteTask(ctx context.Context, id string) error
}

// ProgramRepository manages program persistence.
type ProgramRepository interface {
	ListPrograms(ctx context.Context) ([]*Program, error)
	GetProgram(ctx context.Context, id string) (*Program, error)
	SaveProgram(ctx context.Context, program *Program) error
	DeleteProgram(ctx context.Context, id string) error
}

// EditorRepository manages editor persistence.
type EditorRepository interface {
	ListEditors(ctx context.Context) ([]*Editor, error)
	GetEditor(ctx context.Context, id string) (*Editor, error)
	SaveEditor(ctx context.Context, editor *Editor) error
	DeleteEditor(ctx context.Context, id string) error
}

// Snapshot is the complete state of all collections at one point in time.
// Tasks are ordered by start date.
type Snapshot struct {
	ReceivedAt time.Time
	Tasks      []*Task
	Programs   []*Program
	Editors    []*Editor
}

// SnapshotSource delivers a fresh Snapshot whenever any collection changes.
type SnapshotSource interface {
	// Subscribe calls fn with the current snapshot, then again after every change,
	// until ctx is cancelled. Callbacks are serialized.
	Subscribe(ctx context.Context, fn func(Snapshot)) error
}

// ScheduleStore is the document store holding tasks, programs and editors.
type ScheduleStore interface {
	TaskRepository
	ProgramRepository
	EditorRepository
	StoreInitializer
	SnapshotSource

	// Close releases the backend.
	Close() error
}

// IDGenerator produces identifiers for new documents.
type IDGenerator interface {
	NewID() string
}

// Logger records diagnostic messages by category.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

// Debug does nothing.
func (NopLogger) Debug(string, string) {}

// Info does nothing.
func (NopLogger) Info(string, string) {}

// Warn does nothing.
func (NopLogger) Warn(string, string) {}

// Error does nothing.
func (NopLogger) Error(string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- data dir).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigInfo describes one config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	GetDataConfigInfo() ConfigInfo
	GetGlobalConfigInfo() ConfigInfo
	InitDataConfig() error
	InitGlobalConfig() error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
