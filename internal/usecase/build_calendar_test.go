package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
)

// cellOf returns the grid cell for the given day of May 2024 in a Monday-first grid.
func cellOf(t *testing.T, cal *Calendar, day int) CalendarDay {
	t.Helper()
	idx := day + 1 // grid starts on Mon 2024-04-29
	return cal.Weeks[idx/7][idx%7]
}

func calendarSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Editors: []*domain.Editor{
			{ID: "e1", Name: "James", Color: "bg-sky-100 text-sky-700"},
			{ID: "e2", Name: "Dolphine", Color: "bg-rose-100 text-rose-700"},
		},
		Tasks: []*domain.Task{
			newTask("a", "James", "2024-05-01", "2024-05-03"),
			newTask("c", "Eason", "2024-05-02", "2024-05-04"),
			newTask("b", "Dolphine", "2024-05-03", "2024-05-05"),
			newTask("d", "James", "2024-05-05", "2024-05-07"),
			newTask("bad", "James", "2024-05-09", "2024-05-08"),
		},
	}
}

func TestComposeCalendar_Grid(t *testing.T) {
	cal := ComposeCalendar(calendarSnapshot(), "2024-05", time.Monday, fixedNow)

	require.Len(t, cal.Weeks, 5)
	for _, week := range cal.Weeks {
		assert.Len(t, week, 7)
	}
	first := cal.Weeks[0][0]
	assert.Equal(t, "2024-04-29", domain.FormatDate(first.Date))
	assert.False(t, first.InMonth)
	assert.True(t, cellOf(t, cal, 1).InMonth)
	assert.True(t, cellOf(t, cal, 15).IsToday)
	assert.False(t, cellOf(t, cal, 14).IsToday)
}

func TestComposeCalendar_Lanes(t *testing.T) {
	cal := ComposeCalendar(calendarSnapshot(), "2024-05", time.Monday, fixedNow)

	assert.Equal(t, domain.LaneLayout{"a": 0, "c": 1, "b": 0, "d": 0}, cal.Layout)
	assert.Equal(t, 2, cal.LaneCount)

	may1 := cellOf(t, cal, 1)
	require.Len(t, may1.Slots, 1)
	assert.Equal(t, "a", may1.Slots[0].Task.ID)
	assert.True(t, may1.Slots[0].IsStart)
	assert.True(t, may1.Slots[0].Label)
	assert.Equal(t, domain.ThemeSky, may1.Slots[0].Theme)
	assert.Equal(t, domain.StatusCompleted, may1.Slots[0].Status)

	// a ends and b starts in lane 0; b is shown.
	may3 := cellOf(t, cal, 3)
	require.Len(t, may3.Slots, 2)
	assert.Equal(t, "b", may3.Slots[0].Task.ID)
	assert.Equal(t, "c", may3.Slots[1].Task.ID)
	assert.False(t, may3.Slots[1].Label)
	assert.Equal(t, domain.ThemeAmber, may3.Slots[1].Theme, "Eason resolves through the default roster")

	// d continues into a new week row and is labelled again.
	may6 := cellOf(t, cal, 6)
	require.Len(t, may6.Slots, 1)
	assert.Equal(t, "d", may6.Slots[0].Task.ID)
	assert.False(t, may6.Slots[0].IsStart)
	assert.True(t, may6.Slots[0].Label)

	assert.Nil(t, cellOf(t, cal, 9).Slots)
	assert.Empty(t, cellOf(t, cal, 9).Entries())
}

func TestComposeCalendar_GapsKeepLanes(t *testing.T) {
	snap := domain.Snapshot{Tasks: []*domain.Task{
		newTask("long", "James", "2024-05-01", "2024-05-10"),
		newTask("mid", "James", "2024-05-02", "2024-05-09"),
		newTask("short", "James", "2024-05-03", "2024-05-04"),
	}}
	snap.Tasks = append(snap.Tasks, newTask("late", "James", "2024-05-06", "2024-05-06"))

	cal := ComposeCalendar(snap, "2024-05", time.Monday, fixedNow)

	// lane 2 is free again on the 6th; lane 1 is still held by mid.
	assert.Equal(t, 2, cal.Layout["late"])
	may6 := cellOf(t, cal, 6)
	require.Len(t, may6.Slots, 3)
	assert.Len(t, may6.Entries(), 3)

	may5 := cellOf(t, cal, 5)
	require.Len(t, may5.Slots, 2)
	assert.Equal(t, "mid", may5.Slots[1].Task.ID)
}

func TestBuildCalendar_Execute(t *testing.T) {
	store := testutil.NewMockScheduleStore()
	for _, task := range calendarSnapshot().Tasks {
		store.AddTasks(task)
	}
	logger := &testutil.MockLogger{}
	uc := NewBuildCalendar(store, newClock(), logger)

	cal, err := uc.Execute(context.Background(), BuildCalendarInput{WeekStart: time.Sunday})

	require.NoError(t, err)
	assert.Equal(t, domain.MonthKey("2024-05"), cal.Month)
	assert.Equal(t, time.Sunday, cal.Weeks[0][0].Date.Weekday())
	require.Len(t, cal.Invalid, 1)
	assert.Equal(t, "bad", cal.Invalid[0].Task.ID)
	assert.ErrorIs(t, cal.Invalid[0].Err, domain.ErrInvertedInterval)
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestBuildCalendar_Execute_ListError(t *testing.T) {
	store := testutil.NewMockScheduleStore()
	store.ListErr = assert.AnError

	_, err := NewBuildCalendar(store, newClock(), &testutil.MockLogger{}).Execute(context.Background(), BuildCalendarInput{})

	assert.ErrorIs(t, err, assert.AnError)
}
