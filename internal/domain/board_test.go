package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBoard(t *testing.T) {
	snap := Snapshot{
		Tasks: []*Task{
			editorTask("a", "Alice", "2024-05-01", "2024-05-05"),
			editorTask("b", "Bob", "2024-05-02", "2024-05-04"),
			editorTask("c", "Bob", "2024-05-20", "2024-05-18"),
		},
	}

	board := BuildBoard(snap, day(2024, 5, 3), "2024-05", StatsOptions{})

	assert.Equal(t, LaneLayout{"a": 0, "b": 1}, board.Layout)
	assert.Equal(t, 2, board.LaneCount)
	require.Len(t, board.Invalid, 1)
	assert.Equal(t, "c", board.Invalid[0].Task.ID)
	assert.Equal(t, 3, board.Stats.MonthlyCount)

	counts := board.StatusCounts()
	assert.Equal(t, 2, counts[StatusActive])
	assert.Equal(t, 1, counts[StatusUpcoming])
}

func TestBoard_StatusCountsIncludeInvertedTasks(t *testing.T) {
	snap := Snapshot{
		Tasks: []*Task{
			editorTask("a", "Alice", "2024-05-01", "2024-05-05"),
			editorTask("late", "Bob", "2024-05-02", "2024-04-28"),
			editorTask("early", "Bob", "2024-05-20", "2024-05-18"),
			editorTask("undated", "Bob", "", "2024-05-18"),
		},
	}

	board := BuildBoard(snap, day(2024, 5, 3), "2024-05", StatsOptions{})

	assert.Len(t, board.Invalid, 3)
	assert.Equal(t, map[TaskStatus]int{
		StatusActive:    1,
		StatusCompleted: 1,
		StatusUpcoming:  1,
		StatusUnknown:   1,
	}, board.StatusCounts())
}

func TestBuildBoard_Idempotent(t *testing.T) {
	snap := Snapshot{Tasks: randomTasks(testRand(), 20)}

	first := BuildBoard(snap, day(2024, 5, 10), "2024-05", StatsOptions{})
	second := BuildBoard(snap, day(2024, 5, 10), "2024-05", StatsOptions{})

	assert.Equal(t, first, second)
}
