// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/infra/config"
	"github.com/runoshun/editflow/internal/infra/docstore"
	"github.com/runoshun/editflow/internal/infra/idgen"
	"github.com/runoshun/editflow/internal/infra/jsonstore"
	"github.com/runoshun/editflow/internal/infra/logging"
	"github.com/runoshun/editflow/internal/infra/pgstore"
	"github.com/runoshun/editflow/internal/infra/sqlitestore"
	"github.com/runoshun/editflow/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	DataDir   string // Data directory (config, JSON/SQLite store, logs)
	StorePath string // Store file for file-based backends; empty for postgres
	LogPath   string // Log file
}

// newConfig resolves the paths for dataDir and the loaded settings.
func newConfig(dataDir string, settings *domain.Config) Config {
	cfg := Config{
		DataDir: dataDir,
		LogPath: domain.LogPath(dataDir),
	}
	if settings.Store.Type != domain.StorePostgres {
		cfg.StorePath = domain.StorePath(dataDir, settings.Store)
	}
	return cfg
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
// Fields are ordered to minimize memory padding.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.ScheduleStore
	Clock         domain.Clock
	IDs           domain.IDGenerator
	Logger        domain.Logger
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Loaded settings
	Settings *domain.Config

	// Configuration
	Config Config

	closers []func() error
}

// New creates a new Container for the given data directory, opening the store selected by config.
func New(ctx context.Context, dataDir string) (*Container, error) {
	configLoader := config.NewLoader(dataDir)
	settings, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := newConfig(dataDir, settings)
	logger := logging.New(dataDir, logging.ParseLevel(settings.Log.Level))

	backend, err := openBackend(ctx, cfg, settings.Store, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	clock := domain.RealClock{}
	store := docstore.New(backend, clock, logger)

	logger.Debug("app", fmt.Sprintf("store %s opened (data dir %s)", settings.Store.Type, dataDir))

	return &Container{
		Store:         store,
		Clock:         clock,
		IDs:           idgen.XID{},
		Logger:        logger,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		Settings:      settings,
		Config:        cfg,
		closers:       []func() error{store.Close, logger.Close},
	}, nil
}

// openBackend creates the backend named by the [store] section.
func openBackend(ctx context.Context, cfg Config, store domain.StoreConfig, logger domain.Logger) (docstore.Backend, error) {
	switch store.Type {
	case "", domain.StoreJSON:
		return jsonstore.New(cfg.StorePath, logger), nil
	case domain.StoreSQLite:
		s, err := sqlitestore.New(cfg.StorePath, sqlitestore.DefaultPollInterval, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case domain.StorePostgres:
		s, err := pgstore.New(ctx, store.URL, pgstore.Options{}, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, store.Type)
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.ScheduleStore, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *Container {
	return &Container{
		Store:         store,
		Clock:         clock,
		IDs:           ids,
		Logger:        logger,
		ConfigLoader:  config.NewLoader(cfg.DataDir),
		ConfigManager: config.NewManager(cfg.DataDir),
		Settings:      domain.NewDefaultConfig(),
		Config:        cfg,
	}
}

// Close releases the store and the log file.
func (c *Container) Close() error {
	var errs []error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WeekStart returns the configured first day of the calendar week.
func (c *Container) WeekStart() (weekStart time.Weekday) {
	weekStart, _ = domain.ParseWeekStart(c.Settings.Calendar.WeekStart)
	return weekStart
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.Store, c.ConfigManager, c.SeedDefaultsUseCase())
}

// SeedDefaultsUseCase returns a new SeedDefaults use case.
func (c *Container) SeedDefaultsUseCase() *usecase.SeedDefaults {
	return usecase.NewSeedDefaults(c.Store, c.Store, c.Logger)
}

// SaveTaskUseCase returns a new SaveTask use case.
func (c *Container) SaveTaskUseCase() *usecase.SaveTask {
	return usecase.NewSaveTask(c.Store, c.IDs, c.Clock, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.Logger)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store, c.Clock)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Clock)
}

// SaveProgramUseCase returns a new SaveProgram use case.
func (c *Container) SaveProgramUseCase() *usecase.SaveProgram {
	return usecase.NewSaveProgram(c.Store, c.IDs, c.Logger)
}

// DeleteProgramUseCase returns a new DeleteProgram use case.
func (c *Container) DeleteProgramUseCase() *usecase.DeleteProgram {
	return usecase.NewDeleteProgram(c.Store, c.Logger)
}

// ListProgramsUseCase returns a new ListPrograms use case.
func (c *Container) ListProgramsUseCase() *usecase.ListPrograms {
	return usecase.NewListPrograms(c.Store)
}

// SaveEditorUseCase returns a new SaveEditor use case.
func (c *Container) SaveEditorUseCase() *usecase.SaveEditor {
	return usecase.NewSaveEditor(c.Store, c.IDs, c.Logger)
}

// DeleteEditorUseCase returns a new DeleteEditor use case.
func (c *Container) DeleteEditorUseCase() *usecase.DeleteEditor {
	return usecase.NewDeleteEditor(c.Store, c.Logger)
}

// ListEditorsUseCase returns a new ListEditors use case.
func (c *Container) ListEditorsUseCase() *usecase.ListEditors {
	return usecase.NewListEditors(c.Store)
}

// BuildCalendarUseCase returns a new BuildCalendar use case.
func (c *Container) BuildCalendarUseCase() *usecase.BuildCalendar {
	return usecase.NewBuildCalendar(c.Store, c.Clock, c.Logger)
}

// ComputeStatsUseCase returns a new ComputeStats use case.
func (c *Container) ComputeStatsUseCase() *usecase.ComputeStats {
	return usecase.NewComputeStats(c.Store, c.Clock)
}

// LoadBoardUseCase returns a new LoadBoard use case.
func (c *Container) LoadBoardUseCase() *usecase.LoadBoard {
	return usecase.NewLoadBoard(c.Store, c.Clock, c.Logger)
}

// WatchScheduleUseCase returns a new WatchSchedule use case.
func (c *Container) WatchScheduleUseCase() *usecase.WatchSchedule {
	return usecase.NewWatchSchedule(c.Store, c.SeedDefaultsUseCase(), c.Clock, c.Logger)
}

// ImportScheduleUseCase returns a new ImportSchedule use case.
func (c *Container) ImportScheduleUseCase() *usecase.ImportSchedule {
	return usecase.NewImportSchedule(c.Store, c.IDs, c.Logger)
}

// ExportScheduleUseCase returns a new ExportSchedule use case.
func (c *Container) ExportScheduleUseCase() *usecase.ExportSchedule {
	return usecase.NewExportSchedule(c.Store, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
