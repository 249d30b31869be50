package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	m, err := ParseMonthKey("2024-05")
	require.NoError(t, err)
	assert.Equal(t, MonthKey("2024-05"), m)

	for _, bad := range []string{"", "2024-5", "2024-13", "May 2024", "2024-05-01"} {
		_, err := ParseMonthKey(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestMonthKey_Navigation(t *testing.T) {
	m := MonthKey("2024-12")

	assert.Equal(t, MonthKey("2025-01"), m.Next())
	assert.Equal(t, MonthKey("2024-11"), m.Prev())
	assert.Equal(t, day(2024, 12, 1), m.Start())
	assert.Equal(t, day(2024, 12, 31), m.End())
	assert.Equal(t, day(2024, 2, 29), MonthKey("2024-02").End())
	assert.Equal(t, MonthKey("2024-05"), MonthKeyOf(time.Date(2024, 5, 17, 9, 30, 0, 0, time.Local)))
}

func TestMonthKey_TouchedBy(t *testing.T) {
	may := MonthKey("2024-05")

	assert.True(t, may.TouchedBy(task("a", "2024-05-31", "2024-06-02")))
	assert.True(t, may.TouchedBy(task("b", "2024-04-30", "2024-05-01")))
	assert.False(t, may.TouchedBy(task("c", "2024-04-01", "2024-06-30")))
	assert.False(t, MonthKey("").TouchedBy(task("d", "2024-05-01", "2024-05-02")))
}

func TestMonthKey_OverlappedBy(t *testing.T) {
	may := MonthKey("2024-05")

	assert.True(t, may.OverlappedBy(task("a", "2024-04-01", "2024-06-30")))
	assert.True(t, may.OverlappedBy(task("b", "2024-04-30", "2024-05-01")))
	assert.False(t, may.OverlappedBy(task("c", "2024-06-01", "2024-06-03")))
}

func TestMonthGrid(t *testing.T) {
	// May 2024 starts on a Wednesday and ends on a Friday.
	days := MonthGrid("2024-05", time.Monday)

	require.Len(t, days, 35)
	assert.Equal(t, day(2024, 4, 29), days[0])
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, day(2024, 6, 2), days[len(days)-1])
	assert.Equal(t, time.Sunday, days[len(days)-1].Weekday())

	sunday := MonthGrid("2024-05", time.Sunday)
	require.Len(t, sunday, 35)
	assert.Equal(t, day(2024, 4, 28), sunday[0])
	assert.Equal(t, day(2024, 6, 1), sunday[len(sunday)-1])
}

func TestMonthGrid_MonthStartingOnWeekStart(t *testing.T) {
	// July 2024 starts on a Monday.
	days := MonthGrid("2024-07", time.Monday)

	assert.Equal(t, day(2024, 7, 1), days[0])
	assert.Equal(t, day(2024, 8, 4), days[len(days)-1])
	assert.Zero(t, len(days)%7)
}

func TestMonthGrid_InvalidMonth(t *testing.T) {
	assert.Nil(t, MonthGrid("nope", time.Monday))
}

func TestParseWeekStart(t *testing.T) {
	wd, err := ParseWeekStart("")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)

	wd, err = ParseWeekStart("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)

	_, err = ParseWeekStart("friday")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInterval(t *testing.T) {
	iv := Interval{Start: day(2024, 5, 1), End: day(2024, 5, 3)}

	assert.Equal(t, 3, iv.Days())
	assert.True(t, iv.Contains(time.Date(2024, 5, 3, 18, 0, 0, 0, time.Local)))
	assert.False(t, iv.Contains(day(2024, 5, 4)))
	assert.True(t, iv.Intersects(Interval{Start: day(2024, 5, 3), End: day(2024, 5, 9)}))
	assert.False(t, iv.Intersects(Interval{Start: day(2024, 5, 4), End: day(2024, 5, 9)}))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 29), d)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
