package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/editflow/internal/domain"
)

// ImportScheduleInput contains the documents to import.
// Fields are ordered to minimize memory padding.
type ImportScheduleInput struct {
	Programs []*domain.Program
	Editors  []*domain.Editor
	Tasks    []*domain.Task
	Replace  bool // Delete existing documents first
}

// ImportScheduleOutput reports what was written.
type ImportScheduleOutput struct {
	Skipped  []domain.InvalidTask
	Programs int
	Editors  int
	Tasks    int
}

// ImportSchedule is the use case for bulk-loading a schedule.
// Documents keep their IDs; documents without one get a new ID. Invalid tasks are skipped and reported.
type ImportSchedule struct {
	store  domain.ScheduleStore
	ids    domain.IDGenerator
	logger domain.Logger
}

// NewImportSchedule creates a new ImportSchedule use case.
func NewImportSchedule(store domain.ScheduleStore, ids domain.IDGenerator, logger domain.Logger) *ImportSchedule {
	return &ImportSchedule{store: store, ids: ids, logger: logger}
}

// Execute imports the documents. Programs and editors are checked before anything is
// written, so a rejected import leaves the store as it was.
func (uc *ImportSchedule) Execute(ctx context.Context, in ImportScheduleInput) (*ImportScheduleOutput, error) {
	if err := uc.prepare(in); err != nil {
		return nil, err
	}

	if in.Replace {
		if err := uc.clear(ctx); err != nil {
			return nil, err
		}
	}

	out := &ImportScheduleOutput{}
	for _, p := range in.Programs {
		if p == nil {
			continue
		}
		if err := uc.store.SaveProgram(ctx, p); err != nil {
			return nil, fmt.Errorf("save program: %w", err)
		}
		out.Programs++
	}

	for _, e := range in.Editors {
		if e == nil {
			continue
		}
		if err := uc.store.SaveEditor(ctx, e); err != nil {
			return nil, fmt.Errorf("save editor: %w", err)
		}
		out.Editors++
	}

	for _, t := range in.Tasks {
		if t == nil {
			continue
		}
		if t.ID == "" {
			t.ID = uc.ids.NewID()
		}
		if err := t.Validate(); err != nil {
			out.Skipped = append(out.Skipped, domain.InvalidTask{Task: t, Err: err})
			uc.logger.Warn("import", fmt.Sprintf("task %s skipped: %v", t.ID, err))
			continue
		}
		if t.Version == 0 {
			t.Version = 1
		}
		if err := uc.store.SaveTask(ctx, t); err != nil {
			return nil, fmt.Errorf("save task: %w", err)
		}
		out.Tasks++
	}

	uc.logger.Info("import", fmt.Sprintf("imported %d programs, %d editors, %d tasks (%d skipped)",
		out.Programs, out.Editors, out.Tasks, len(out.Skipped)))
	return out, nil
}

// prepare assigns missing IDs and default colors, then validates programs and editors.
func (uc *ImportSchedule) prepare(in ImportScheduleInput) error {
	for _, p := range in.Programs {
		if p == nil {
			continue
		}
		if p.ID == "" {
			p.ID = uc.ids.NewID()
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("program %s: %w", p.ID, err)
		}
	}
	for _, e := range in.Editors {
		if e == nil {
			continue
		}
		if e.ID == "" {
			e.ID = uc.ids.NewID()
		}
		if e.Color == "" {
			e.Color = domain.DefaultColor()
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("editor %s: %w", e.ID, err)
		}
	}
	return nil
}

func (uc *ImportSchedule) clear(ctx context.Context) error {
	snap, err := loadSnapshot(ctx, uc.store, time.Time{})
	if err != nil {
		return err
	}
	for _, t := range snap.Tasks {
		if err := uc.store.DeleteTask(ctx, t.ID); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
	}
	for _, p := range snap.Programs {
		if err := uc.store.DeleteProgram(ctx, p.ID); err != nil {
			return fmt.Errorf("delete program: %w", err)
		}
	}
	for _, e := range snap.Editors {
		if err := uc.store.DeleteEditor(ctx, e.ID); err != nil {
			return fmt.Errorf("delete editor: %w", err)
		}
	}
	return nil
}
