package usecase

import (
	"time"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 15, 10, 30, 0, 0, time.Local)

func newClock() *testutil.MockClock {
	return &testutil.MockClock{NowTime: fixedNow}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func newTask(id, editor, start, end string) *domain.Task {
	return &domain.Task{ID: id, Show: "Correspondents", Episode: id, Editor: editor, StartDate: start, EndDate: end, Version: 1}
}
