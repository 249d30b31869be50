package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/editflow/internal/domain"
)

// WatchScheduleInput contains the parameters for watching the schedule.
type WatchScheduleInput struct {
	OnBoard  func(*domain.Board) // Called for every snapshot, from the subscription goroutine
	Month    domain.MonthKey     // Empty = the month of each snapshot's arrival
	Options  domain.StatsOptions
	SkipSeed bool
}

// WatchSchedule subscribes to the store and recomputes the board for every snapshot.
// Nothing is cached between snapshots.
type WatchSchedule struct {
	store  domain.ScheduleStore
	seed   *SeedDefaults
	clock  domain.Clock
	logger domain.Logger
}

// NewWatchSchedule creates a new WatchSchedule use case.
func NewWatchSchedule(store domain.ScheduleStore, seed *SeedDefaults, clock domain.Clock, logger domain.Logger) *WatchSchedule {
	return &WatchSchedule{store: store, seed: seed, clock: clock, logger: logger}
}

// Execute blocks until ctx is cancelled or the subscription fails.
// The first snapshot with an empty roster or program list triggers seeding; the writes arrive
// as a later snapshot. A failed seed is retried on the next snapshot that is still empty.
func (uc *WatchSchedule) Execute(ctx context.Context, in WatchScheduleInput) error {
	if in.OnBoard == nil {
		return fmt.Errorf("watch schedule: OnBoard is required")
	}
	seeded := in.SkipSeed

	err := uc.store.Subscribe(ctx, func(snap domain.Snapshot) {
		if !seeded && (len(snap.Editors) == 0 || len(snap.Programs) == 0) {
			if _, err := uc.seed.Execute(ctx, SeedDefaultsInput{}); err != nil {
				uc.logger.Error("seed", "seed defaults: "+err.Error())
			} else {
				seeded = true
			}
		}

		now := uc.clock.Now()
		board := domain.BuildBoard(snap, now, monthOrCurrent(in.Month, now), in.Options)
		logInvalidTasks(uc.logger, board.Invalid)
		uc.logger.Debug("schedule", fmt.Sprintf("board rebuilt: %d tasks, %d lanes", len(snap.Tasks), board.LaneCount))
		in.OnBoard(board)
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}
