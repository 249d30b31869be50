package domain

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// LaneLayout maps a task ID to its 0-based lane: the row a task occupies in every calendar cell it spans.
type LaneLayout map[string]int

// LaneCount returns the number of lanes used by the layout.
func LaneCount(layout LaneLayout) int {
	n := 0
	for _, lane := range layout {
		if lane+1 > n {
			n = lane + 1
		}
	}
	return n
}

// InvalidTask is a task excluded from date-based computations, with the reason.
type InvalidTask struct {
	Task *Task
	Err  error
}

// PartitionTasks splits tasks into those with usable date intervals and those without.
// Nil entries are dropped.
func PartitionTasks(tasks []*Task) (valid []*Task, invalid []InvalidTask) {
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if _, err := t.Interval(); err != nil {
			invalid = append(invalid, InvalidTask{Task: t, Err: err})
			continue
		}
		valid = append(valid, t)
	}
	return valid, invalid
}

// laneItem is a task prepared for packing.
type laneItem struct {
	id       string
	start    string
	end      string
	freeFrom string // first day another task may start in the same lane
}

// ComputeLaneLayout assigns every task a lane so that tasks sharing a lane never overlap,
// using as few lanes as possible.
//
// Tasks are taken in start order; among tasks starting the same day the longer one goes first,
// so long-running work claims the lower lanes. Each task takes the first lane whose previous task
// is finished by its start. A task ending on day D frees its lane for a task starting on D;
// a single-day task keeps its lane through that day.
//
// Tasks with missing, malformed or inverted dates are skipped.
func ComputeLaneLayout(tasks []*Task) LaneLayout {
	valid, _ := PartitionTasks(tasks)

	items := make([]laneItem, 0, len(valid))
	for _, t := range valid {
		iv, _ := t.Interval()
		item := laneItem{
			id:       t.ID,
			start:    FormatDate(iv.Start),
			end:      FormatDate(iv.End),
			freeFrom: FormatDate(iv.End),
		}
		if item.start == item.end {
			item.freeFrom = FormatDate(iv.End.AddDate(0, 0, 1))
		}
		items = append(items, item)
	}

	slices.SortFunc(items, func(a, b laneItem) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.end, a.end); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	layout := make(LaneLayout, len(items))
	var lanes []string // free-from date per lane
	for _, item := range items {
		assigned := -1
		for i, freeFrom := range lanes {
			if freeFrom <= item.start {
				assigned = i
				lanes[i] = item.freeFrom
				break
			}
		}
		if assigned == -1 {
			assigned = len(lanes)
			lanes = append(lanes, item.freeFrom)
		}
		layout[item.id] = assigned
	}
	return layout
}

// TasksOnDay returns the tasks whose interval contains day, ordered by lane.
// Tasks missing from the layout sort last.
func TasksOnDay(tasks []*Task, layout LaneLayout, day time.Time) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t == nil {
			continue
		}
		iv, err := t.Interval()
		if err != nil || !iv.Contains(day) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b *Task) int {
		return cmp.Compare(laneOrLast(layout, a.ID), laneOrLast(layout, b.ID))
	})
	return out
}

func laneOrLast(layout LaneLayout, id string) int {
	if lane, ok := layout[id]; ok {
		return lane
	}
	return math.MaxInt
}
