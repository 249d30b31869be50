package domain

import "time"

// Board is everything derived from one snapshot: the lane layout, workload figures and the
// records that could not be placed. It is rebuilt from scratch for every snapshot.
// Fields are ordered to minimize memory padding.
type Board struct {
	Today     time.Time
	Snapshot  Snapshot
	Layout    LaneLayout
	Invalid   []InvalidTask
	Stats     Stats
	LaneCount int
}

// BuildBoard recomputes the derived views for snap as seen on today.
func BuildBoard(snap Snapshot, today time.Time, month MonthKey, opts StatsOptions) *Board {
	_, invalid := PartitionTasks(snap.Tasks)
	layout := ComputeLaneLayout(snap.Tasks)
	return &Board{
		Today:     StartOfDay(today),
		Snapshot:  snap,
		Layout:    layout,
		LaneCount: LaneCount(layout),
		Invalid:   invalid,
		Stats:     ComputeStats(snap.Tasks, month, opts),
	}
}

// StatusCounts tallies the tasks of the board by status.
func (b *Board) StatusCounts() map[TaskStatus]int {
	counts := make(map[TaskStatus]int, len(AllStatuses()))
	for _, t := range b.Snapshot.Tasks {
		if t == nil {
			continue
		}
		counts[ClassifyStatus(t, b.Today)]++
	}
	return counts
}
