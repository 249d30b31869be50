package usecase

import (
	"context"

	"github.com/runoshun/editflow/internal/domain"
)

// LoadBoardInput contains the parameters for loading the derived schedule views.
type LoadBoardInput struct {
	Month   domain.MonthKey // Empty = current month
	Options domain.StatsOptions
}

// LoadBoard is the use case for a one-shot board: layout, stats and invalid records.
type LoadBoard struct {
	store  domain.ScheduleStore
	clock  domain.Clock
	logger domain.Logger
}

// NewLoadBoard creates a new LoadBoard use case.
func NewLoadBoard(store domain.ScheduleStore, clock domain.Clock, logger domain.Logger) *LoadBoard {
	return &LoadBoard{store: store, clock: clock, logger: logger}
}

// Execute loads the schedule and builds the board.
func (uc *LoadBoard) Execute(ctx context.Context, in LoadBoardInput) (*domain.Board, error) {
	now := uc.clock.Now()
	snap, err := loadSnapshot(ctx, uc.store, now)
	if err != nil {
		return nil, err
	}
	board := domain.BuildBoard(snap, now, monthOrCurrent(in.Month, now), in.Options)
	logInvalidTasks(uc.logger, board.Invalid)
	return board, nil
}
