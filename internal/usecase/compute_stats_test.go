package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
)

func TestComposeStats_RosterOrder(t *testing.T) {
	snap := domain.Snapshot{
		Programs: domain.DefaultPrograms(),
		Editors: []*domain.Editor{
			{ID: "e1", Name: "James", Color: "bg-sky-100"},
			{ID: "e2", Name: "Dolphine", Color: "bg-rose-100"},
		},
		Tasks: []*domain.Task{
			newTask("t1", "James", "2024-05-01", "2024-05-02"),
			newTask("t2", "James", "2024-05-20", "2024-06-02"),
			newTask("t3", "Zoe", "2024-05-07", "2024-05-08"),
			newTask("t4", "Mia", "2024-04-07", "2024-04-08"),
		},
	}

	report := ComposeStats(snap, "2024-05", domain.StatsOptions{})

	assert.Equal(t, 4, report.ProgramCount)
	assert.Equal(t, 4, report.TaskCount)
	assert.Equal(t, 3, report.Stats.MonthlyCount)
	assert.Equal(t, 2, report.MonthlyMax)

	names := make([]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		names = append(names, row.Editor.Name)
	}
	assert.Equal(t, []string{"James", "Dolphine", "Mia", "Zoe"}, names)

	assert.Equal(t, EditorStatsRow{Editor: snap.Editors[0], Theme: domain.ThemeSky, Total: 2, Monthly: 2}, report.Rows[0])
	assert.Zero(t, report.Rows[1].Total)
	assert.Equal(t, 1, report.Rows[2].Total)
	assert.Zero(t, report.Rows[2].Monthly)
	assert.Equal(t, domain.ThemeSlate, report.Rows[3].Theme)
}

func TestComputeStats_Execute_Scenario(t *testing.T) {
	store := testutil.NewMockScheduleStore()
	for i, editor := range []string{"Alice", "Alice", "Alice", "Bob", "Bob"} {
		store.AddTasks(newTask(string(rune('a'+i)), editor, "2024-05-0"+string(rune('1'+i)), "2024-05-09"))
	}
	uc := NewComputeStats(store, newClock())

	report, err := uc.Execute(context.Background(), ComputeStatsInput{})

	require.NoError(t, err)
	assert.Equal(t, domain.MonthKey("2024-05"), report.Stats.Month)
	assert.Equal(t, 5, report.Stats.MonthlyCount)
	assert.Equal(t, map[string]int{"Alice": 3, "Bob": 2}, report.Stats.MonthlyByEditor)
}

func TestComputeStats_Execute_Overlap(t *testing.T) {
	store := testutil.NewMockScheduleStore()
	store.AddTasks(newTask("t1", "James", "2024-04-20", "2024-06-10"))
	uc := NewComputeStats(store, newClock())

	boundary, err := uc.Execute(context.Background(), ComputeStatsInput{Month: "2024-05"})
	require.NoError(t, err)
	overlap, err := uc.Execute(context.Background(), ComputeStatsInput{
		Month:   "2024-05",
		Options: domain.StatsOptions{Membership: domain.MembershipOverlap},
	})
	require.NoError(t, err)

	assert.Zero(t, boundary.Stats.MonthlyCount)
	assert.Equal(t, 1, overlap.Stats.MonthlyCount)
}
