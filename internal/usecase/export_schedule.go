package usecase

import (
	"context"

	"github.com/runoshun/editflow/internal/domain"
)

// ExportSchedule is the use case for reading the whole schedule at once.
type ExportSchedule struct {
	store domain.ScheduleStore
	clock domain.Clock
}

// NewExportSchedule creates a new ExportSchedule use case.
func NewExportSchedule(store domain.ScheduleStore, clock domain.Clock) *ExportSchedule {
	return &ExportSchedule{store: store, clock: clock}
}

// Execute returns the current snapshot.
func (uc *ExportSchedule) Execute(ctx context.Context) (domain.Snapshot, error) {
	return loadSnapshot(ctx, uc.store, uc.clock.Now())
}
