package docstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/runoshun/editflow/internal/domain"
)

const logCategory = "docstore"

// Store implements domain.ScheduleStore on top of a Backend.
type Store struct {
	backend Backend
	clock   domain.Clock
	logger  domain.Logger
}

// New creates a Store over the given backend.
func New(backend Backend, clock domain.Clock, logger domain.Logger) *Store {
	if clock == nil {
		clock = domain.RealClock{}
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{backend: backend, clock: clock, logger: logger}
}

// Initialize creates the backend schema or file.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.backend.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// === Tasks ===

// ListTasks returns every task ordered by start date, then ID.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := list[domain.Task](ctx, s.backend, s.logger, domain.CollectionTasks)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		if c := cmp.Compare(a.StartDate, b.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return get[domain.Task](ctx, s.backend, domain.CollectionTasks, id, domain.ErrTaskNotFound)
}

// SaveTask creates or replaces a task.
func (s *Store) SaveTask(ctx context.Context, task *domain.Task) error {
	return put(ctx, s.backend, domain.CollectionTasks, task.ID, task)
}

// DeleteTask removes a task by ID.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.delete(ctx, domain.CollectionTasks, id)
}

// === Programs ===

// ListPrograms returns every program ordered by ID.
func (s *Store) ListPrograms(ctx context.Context) ([]*domain.Program, error) {
	programs, err := list[domain.Program](ctx, s.backend, s.logger, domain.CollectionPrograms)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(programs, func(a, b *domain.Program) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return programs, nil
}

// GetProgram retrieves a program by ID.
func (s *Store) GetProgram(ctx context.Context, id string) (*domain.Program, error) {
	return get[domain.Program](ctx, s.backend, domain.CollectionPrograms, id, domain.ErrProgramNotFound)
}

// SaveProgram creates or replaces a program.
func (s *Store) SaveProgram(ctx context.Context, program *domain.Program) error {
	return put(ctx, s.backend, domain.CollectionPrograms, program.ID, program)
}

// DeleteProgram removes a program by ID.
func (s *Store) DeleteProgram(ctx context.Context, id string) error {
	return s.delete(ctx, domain.CollectionPrograms, id)
}

// === Editors ===

// ListEditors returns every editor ordered by ID.
func (s *Store) ListEditors(ctx context.Context) ([]*domain.Editor, error) {
	editors, err := list[domain.Editor](ctx, s.backend, s.logger, domain.CollectionEditors)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(editors, func(a, b *domain.Editor) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return editors, nil
}

// GetEditor retrieves an editor by ID.
func (s *Store) GetEditor(ctx context.Context, id string) (*domain.Editor, error) {
	return get[domain.Editor](ctx, s.backend, domain.CollectionEditors, id, domain.ErrEditorNotFound)
}

// SaveEditor creates or replaces an editor.
func (s *Store) SaveEditor(ctx context.Context, editor *domain.Editor) error {
	return put(ctx, s.backend, domain.CollectionEditors, editor.ID, editor)
}

// DeleteEditor removes an editor by ID.
func (s *Store) DeleteEditor(ctx context.Context, id string) error {
	return s.delete(ctx, domain.CollectionEditors, id)
}

// === Snapshots ===

// Subscribe delivers the current snapshot, then a fresh one after every change reported by the
// backend, until ctx is cancelled. A failed reload is logged and skipped; the next change retries.
func (s *Store) Subscribe(ctx context.Context, fn func(domain.Snapshot)) error {
	changes, err := s.backend.Changes(ctx)
	if err != nil {
		return fmt.Errorf("watch changes: %w", err)
	}

	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	fn(snap)

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return domain.ErrStoreClosed
			}
			snap, err := s.Load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Warn(logCategory, "reload after change failed: "+err.Error())
				continue
			}
			s.logger.Debug(logCategory, fmt.Sprintf("snapshot: %d tasks, %d programs, %d editors",
				len(snap.Tasks), len(snap.Programs), len(snap.Editors)))
			fn(snap)
		}
	}
}

// Load reads all three collections into one snapshot.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	programs, err := s.ListPrograms(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	editors, err := s.ListEditors(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{
		ReceivedAt: s.clock.Now(),
		Tasks:      tasks,
		Programs:   programs,
		Editors:    editors,
	}, nil
}

func (s *Store) delete(ctx context.Context, collection, id string) error {
	if err := s.backend.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func get[T any](ctx context.Context, b Backend, collection, id string, notFound error) (*T, error) {
	raw, err := b.Get(ctx, collection, id)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", notFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return &v, nil
}

// list decodes every document in a collection. Documents that fail to decode are
// logged and left out so one bad record cannot hide the rest of the schedule.
func list[T any](ctx context.Context, b Backend, logger domain.Logger, collection string) ([]*T, error) {
	raws, err := b.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			logger.Warn(logCategory, fmt.Sprintf("skipping undecodable %s document: %v", collection, err))
			continue
		}
		out = append(out, &v)
	}
	return out, nil
}

func put(ctx context.Context, b Backend, collection, id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	if err := b.Put(ctx, collection, id, raw); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Ensure Store implements domain.ScheduleStore.
var _ domain.ScheduleStore = (*Store)(nil)
