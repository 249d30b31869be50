package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MonthMembership selects how tasks are assigned to a month for monthly figures.
type MonthMembership string

const (
	// MembershipBoundary counts a task in a month when its start or end date falls in it.
	// A task spanning a whole month without starting or ending there is not counted for it.
	MembershipBoundary MonthMembership = "boundary"
	// MembershipOverlap counts a task in every month its interval intersects.
	MembershipOverlap MonthMembership = "overlap"
)

// ParseMonthMembership maps a config value to a membership rule. Empty selects boundary.
func ParseMonthMembership(s string) (MonthMembership, error) {
	switch MonthMembership(strings.ToLower(strings.TrimSpace(s))) {
	case "", MembershipBoundary:
		return MembershipBoundary, nil
	case MembershipOverlap:
		return MembershipOverlap, nil
	default:
		return MembershipBoundary, fmt.Errorf("%w: membership %q", ErrInvalidConfig, s)
	}
}

// StatsOptions tunes ComputeStats.
type StatsOptions struct {
	Membership MonthMembership
}

// Stats holds workload figures: lifetime totals and figures for one month.
// Counts are keyed by the editor string stored on each task.
// Fields are ordered to minimize memory padding.
type Stats struct {
	TotalByEditor   map[string]int `json:"totalByEditor"`
	MonthlyByEditor map[string]int `json:"monthlyByEditor"`
	Month           MonthKey       `json:"month"`
	TotalCount      int            `json:"totalCount"`
	MonthlyCount    int            `json:"monthlyCount"`
}

// ComputeStats counts tasks overall and for the given month, per editor.
// Unassigned or renamed editors accumulate under whatever name the task stores.
func ComputeStats(tasks []*Task, month MonthKey, opts StatsOptions) Stats {
	stats := Stats{
		Month:           month,
		TotalByEditor:   make(map[string]int),
		MonthlyByEditor: make(map[string]int),
	}

	inMonth := month.TouchedBy
	if opts.Membership == MembershipOverlap {
		inMonth = month.OverlappedBy
	}

	for _, t := range tasks {
		if t == nil {
			continue
		}
		stats.TotalCount++
		stats.TotalByEditor[t.Editor]++

		if month != "" && inMonth(t) {
			stats.MonthlyCount++
			stats.MonthlyByEditor[t.Editor]++
		}
	}
	return stats
}

// MonthlyMax returns the largest per-editor monthly count, at least 1, for scaling bars.
func (s Stats) MonthlyMax() int {
	maxCount := 1
	for _, n := range s.MonthlyByEditor {
		if n > maxCount {
			maxCount = n
		}
	}
	return maxCount
}

// EditorCount pairs an editor name with a count.
type EditorCount struct {
	Editor string `json:"editor"`
	Count  int    `json:"count"`
}

// SortedCounts returns the counts ordered by count descending, then editor name.
func SortedCounts(counts map[string]int) []EditorCount {
	out := make([]EditorCount, 0, len(counts))
	for editor, n := range counts {
		out = append(out, EditorCount{Editor: editor, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Editor < out[j].Editor
	})
	return out
}
