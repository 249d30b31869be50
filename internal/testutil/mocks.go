// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/editflow/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIDGenerator returns sequential IDs with a fixed prefix.
type MockIDGenerator struct {
	Prefix string
	N      int
}

// NewID returns the next ID, e.g. "id1", "id2".
func (m *MockIDGenerator) NewID() string {
	m.N++
	prefix := m.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s%d", prefix, m.N)
}

// MockScheduleStore is an in-memory test double for domain.ScheduleStore.
// Snapshots queued in Pending are delivered by Subscribe after the initial one.
// Fields are ordered to minimize memory padding.
type MockScheduleStore struct {
	Tasks         map[string]*domain.Task
	Programs      map[string]*domain.Program
	Editors       map[string]*domain.Editor
	ListErr       error
	GetErr        error
	SaveErr       error
	DeleteErr     error
	InitErr       error
	SubscribeErr  error
	Pending       []domain.Snapshot
	mu            sync.Mutex
	Initialized   bool
	Closed        bool
	SubscribeCall int
}

// NewMockScheduleStore creates a MockScheduleStore with initialized maps.
func NewMockScheduleStore() *MockScheduleStore {
	return &MockScheduleStore{
		Tasks:    make(map[string]*domain.Task),
		Programs: make(map[string]*domain.Program),
		Editors:  make(map[string]*domain.Editor),
	}
}

// Initialize marks the store as initialized.
func (m *MockScheduleStore) Initialize(_ context.Context) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// Close marks the store as closed.
func (m *MockScheduleStore) Close() error {
	m.Closed = true
	return nil
}

// ListTasks returns all tasks ordered by start date.
func (m *MockScheduleStore) ListTasks(_ context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.sortedTasks(), nil
}

// GetTask retrieves a task by ID.
func (m *MockScheduleStore) GetTask(_ context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// SaveTask stores a copy of the task.
func (m *MockScheduleStore) SaveTask(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks[task.ID] = task.Clone()
	return nil
}

// DeleteTask removes a task by ID.
func (m *MockScheduleStore) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Tasks, id)
	return nil
}

// ListPrograms returns all programs ordered by ID.
func (m *MockScheduleStore) ListPrograms(_ context.Context) ([]*domain.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.sortedPrograms(), nil
}

// GetProgram retrieves a program by ID.
func (m *MockScheduleStore) GetProgram(_ context.Context, id string) (*domain.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.Programs[id]
	if !ok {
		return nil, domain.ErrProgramNotFound
	}
	c := *p
	return &c, nil
}

// SaveProgram stores a copy of the program.
func (m *MockScheduleStore) SaveProgram(_ context.Context, program *domain.Program) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	c := *program
	m.Programs[program.ID] = &c
	return nil
}

// DeleteProgram removes a program by ID.
func (m *MockScheduleStore) DeleteProgram(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Programs, id)
	return nil
}

// ListEditors returns all editors ordered by ID.
func (m *MockScheduleStore) ListEditors(_ context.Context) ([]*domain.Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.sortedEditors(), nil
}

// GetEditor retrieves an editor by ID.
func (m *MockScheduleStore) GetEditor(_ context.Context, id string) (*domain.Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	e, ok := m.Editors[id]
	if !ok {
		return nil, domain.ErrEditorNotFound
	}
	c := *e
	return &c, nil
}

// SaveEditor stores a copy of the editor.
func (m *MockScheduleStore) SaveEditor(_ context.Context, editor *domain.Editor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	c := *editor
	m.Editors[editor.ID] = &c
	return nil
}

// DeleteEditor removes an editor by ID.
func (m *MockScheduleStore) DeleteEditor(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Editors, id)
	return nil
}

// Subscribe delivers the current contents, then every snapshot in Pending, then returns.
func (m *MockScheduleStore) Subscribe(ctx context.Context, fn func(domain.Snapshot)) error {
	m.SubscribeCall++
	if m.SubscribeErr != nil {
		return m.SubscribeErr
	}
	fn(m.Snapshot())
	for _, snap := range m.Pending {
		if ctx.Err() != nil {
			return nil
		}
		fn(snap)
	}
	return nil
}

// Snapshot returns the current contents as a snapshot.
func (m *MockScheduleStore) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Snapshot{
		Tasks:    m.sortedTasks(),
		Programs: m.sortedPrograms(),
		Editors:  m.sortedEditors(),
	}
}

// AddTasks stores the given tasks directly, bypassing validation.
func (m *MockScheduleStore) AddTasks(tasks ...*domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tasks {
		m.Tasks[t.ID] = t
	}
}

func (m *MockScheduleStore) sortedTasks() []*domain.Task {
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tasks = append(tasks, t)
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		if c := cmp.Compare(a.StartDate, b.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return tasks
}

func (m *MockScheduleStore) sortedPrograms() []*domain.Program {
	programs := make([]*domain.Program, 0, len(m.Programs))
	for _, p := range m.Programs {
		programs = append(programs, p)
	}
	slices.SortFunc(programs, func(a, b *domain.Program) int { return cmp.Compare(a.ID, b.ID) })
	return programs
}

func (m *MockScheduleStore) sortedEditors() []*domain.Editor {
	editors := make([]*domain.Editor, 0, len(m.Editors))
	for _, e := range m.Editors {
		editors = append(editors, e)
	}
	slices.SortFunc(editors, func(a, b *domain.Editor) int { return cmp.Compare(a.ID, b.ID) })
	return editors
}

// Ensure MockScheduleStore implements domain.ScheduleStore.
var _ domain.ScheduleStore = (*MockScheduleStore)(nil)

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger records every message.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug message.
func (m *MockLogger) Debug(category, msg string) { m.add("debug", category, msg) }

// Info records an info message.
func (m *MockLogger) Info(category, msg string) { m.add("info", category, msg) }

// Warn records a warning.
func (m *MockLogger) Warn(category, msg string) { m.add("warn", category, msg) }

// Error records an error.
func (m *MockLogger) Error(category, msg string) { m.add("error", category, msg) }

// Count returns the number of entries at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
}

// NewMockConfigLoader creates a MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config:       domain.NewDefaultConfig(),
		GlobalConfig: domain.NewDefaultConfig(),
	}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured global config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.GlobalConfig, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	DataConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitDataErr      error
	InitGlobalErr    error
	InitDataCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a MockConfigManager with placeholder paths.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		DataConfigInfo:   domain.ConfigInfo{Path: "/data/.editflow/config.toml"},
		GlobalConfigInfo: domain.ConfigInfo{Path: "/home/user/.config/editflow/config.toml"},
	}
}

// GetDataConfigInfo returns the data dir config info.
func (m *MockConfigManager) GetDataConfigInfo() domain.ConfigInfo {
	return m.DataConfigInfo
}

// GetGlobalConfigInfo returns the global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitDataConfig records the call.
func (m *MockConfigManager) InitDataConfig() error {
	m.InitDataCalled = true
	return m.InitDataErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}
