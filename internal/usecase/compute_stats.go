package usecase

import (
	"context"
	"slices"

	"github.com/runoshun/editflow/internal/domain"
)

// EditorStatsRow is the workload of one editor.
type EditorStatsRow struct {
	Editor  *domain.Editor
	Theme   domain.Theme
	Total   int
	Monthly int
}

// StatsReport is the insights view model.
// Fields are ordered to minimize memory padding.
type StatsReport struct {
	Stats        domain.Stats
	Rows         []EditorStatsRow
	ProgramCount int
	TaskCount    int
	MonthlyMax   int
}

// ComposeStats aggregates snap for month. Rows follow roster order; editor names found only on
// tasks are appended after the roster, alphabetically.
func ComposeStats(snap domain.Snapshot, month domain.MonthKey, opts domain.StatsOptions) *StatsReport {
	stats := domain.ComputeStats(snap.Tasks, month, opts)
	report := &StatsReport{
		Stats:        stats,
		ProgramCount: len(snap.Programs),
		TaskCount:    stats.TotalCount,
		MonthlyMax:   stats.MonthlyMax(),
	}

	seen := make(map[string]bool)
	addRow := func(e *domain.Editor) {
		seen[e.Name] = true
		report.Rows = append(report.Rows, EditorStatsRow{
			Editor:  e,
			Theme:   domain.ThemeFor(e.Color),
			Total:   stats.TotalByEditor[e.Name],
			Monthly: stats.MonthlyByEditor[e.Name],
		})
	}
	for _, e := range snap.Editors {
		if e != nil && !seen[e.Name] {
			addRow(e)
		}
	}

	var extra []string
	for name := range stats.TotalByEditor {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		addRow(domain.ResolveEditor(snap.Editors, name))
	}
	return report
}

// ComputeStatsInput contains the parameters for computing workload figures.
type ComputeStatsInput struct {
	Month   domain.MonthKey // Empty = current month
	Options domain.StatsOptions
}

// ComputeStats is the use case for the insights view.
type ComputeStats struct {
	store domain.ScheduleStore
	clock domain.Clock
}

// NewComputeStats creates a new ComputeStats use case.
func NewComputeStats(store domain.ScheduleStore, clock domain.Clock) *ComputeStats {
	return &ComputeStats{store: store, clock: clock}
}

// Execute loads the schedule and aggregates it.
func (uc *ComputeStats) Execute(ctx context.Context, in ComputeStatsInput) (*StatsReport, error) {
	now := uc.clock.Now()
	snap, err := loadSnapshot(ctx, uc.store, now)
	if err != nil {
		return nil, err
	}
	return ComposeStats(snap, monthOrCurrent(in.Month, now), in.Options), nil
}
