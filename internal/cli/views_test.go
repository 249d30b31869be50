package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/infra/transfer"
)

// =============================================================================
// Calendar Command Tests
// =============================================================================

func TestCalendar_CurrentMonth(t *testing.T) {
	c, _ := newTestContainer(t, task("a", "12", "James", "2024-05-13", "2024-05-15"))

	out, err := execute(newCalendarCommand(c))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "May 2024\n"))
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "[15]")
	assert.Contains(t, out, "(30)", "April days before the 1st are marked")
	assert.Contains(t, out, "● Corresp")
	assert.Contains(t, out, "·")
	assert.NotContains(t, out, "unusable")
}

func TestCalendar_WeekStartsOnConfiguredDay(t *testing.T) {
	c, _ := newTestContainer(t)
	c.Settings.Calendar.WeekStart = "sunday"

	out, err := execute(newCalendarCommand(c), "--month", "2024-05")

	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[2], "Sun"), "got %q", lines[2])
}

func TestCalendar_OtherMonth(t *testing.T) {
	c, _ := newTestContainer(t, task("a", "12", "James", "2024-05-13", "2024-05-15"))

	out, err := execute(newCalendarCommand(c), "--month", "2024-07")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "July 2024\n"))
	assert.NotContains(t, out, "Corresp")
	assert.NotContains(t, out, "[15]")
}

func TestCalendar_ReportsUnusableTasks(t *testing.T) {
	bad := task("bad", "9", "Eason", "2024-05-20", "2024-05-18")
	c, _ := newTestContainer(t, bad)

	out, err := execute(newCalendarCommand(c))

	require.NoError(t, err)
	assert.Contains(t, out, "1 task(s) with unusable dates are not shown:")
	assert.Contains(t, out, "bad Correspondents #9")
}

func TestCalendar_InvalidMonth(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := execute(newCalendarCommand(c), "--month", "2024-13")

	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

// =============================================================================
// Stats Command Tests
// =============================================================================

func statsFixture(t *testing.T) []*domain.Task {
	t.Helper()
	return []*domain.Task{
		task("a", "12", "James", "2024-05-13", "2024-05-15"),
		task("b", "11", "Eason", "2024-04-29", "2024-05-02"),
		task("c", "10", "Dolphine", "2024-04-28", "2024-06-02"),
	}
}

func TestStats_BoundaryMembership(t *testing.T) {
	c, _ := newTestContainer(t, statsFixture(t)...)

	out, err := execute(newStatsCommand(c))

	require.NoError(t, err)
	assert.Contains(t, out, "May 2024 (boundary)")
	assert.Contains(t, out, "Programs: 4  Tasks: 3  This month: 2")
	assert.Contains(t, out, "EDITOR")
	assert.Contains(t, out, "James")
	assert.Contains(t, out, strings.Repeat("█", statsBarWidth))
}

func TestStats_OverlapMembership(t *testing.T) {
	c, _ := newTestContainer(t, statsFixture(t)...)

	out, err := execute(newStatsCommand(c), "--membership", "overlap")

	require.NoError(t, err)
	assert.Contains(t, out, "May 2024 (overlap)")
	assert.Contains(t, out, "This month: 3")
}

func TestStats_OverlapFromConfig(t *testing.T) {
	c, _ := newTestContainer(t, statsFixture(t)...)
	c.Settings.Stats.Membership = string(domain.MembershipOverlap)

	out, err := execute(newStatsCommand(c), "--month", "2024-05")

	require.NoError(t, err)
	assert.Contains(t, out, "This month: 3")
}

func TestStats_InvalidMembership(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := execute(newStatsCommand(c), "--membership", "sometimes")

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestWorkloadBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", statsBarWidth), workloadBar(0, 4))
	assert.Equal(t, strings.Repeat("█", statsBarWidth), workloadBar(4, 4))
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10), workloadBar(2, 4))
	assert.Equal(t, "█"+strings.Repeat("░", statsBarWidth-1), workloadBar(1, 100))
}

// =============================================================================
// Watch Command Tests
// =============================================================================

func TestWatch_PrintsBoardSummary(t *testing.T) {
	c, store := newTestContainer(t, task("a", "12", "James", "2024-05-13", "2024-05-15"))
	next := store.Snapshot()
	next.Tasks = append(next.Tasks, task("bad", "9", "Eason", "2024-05-20", "2024-05-18"))
	store.Pending = []domain.Snapshot{next}

	out, err := execute(newWatchCommand(c))

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1 task(s), 1 lane(s), 1 in 2024-05")
	assert.NotContains(t, lines[0], "unusable")
	assert.Contains(t, lines[1], "2 task(s)")
	assert.Contains(t, lines[1], "1 unusable")
}

func TestWatch_SubscribeError(t *testing.T) {
	c, store := newTestContainer(t)
	store.SubscribeErr = assert.AnError

	_, err := execute(newWatchCommand(c))

	assert.ErrorIs(t, err, assert.AnError)
}

// =============================================================================
// Import / Export Command Tests
// =============================================================================

func TestExport_Stdout(t *testing.T) {
	c, _ := newTestContainer(t, task("a", "12", "James", "2024-05-13", "2024-05-15"))

	out, err := execute(newExportCommand(c))
	require.NoError(t, err)

	doc, err := transfer.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, transfer.FormatVersion, doc.Version)
	assert.NotEmpty(t, doc.ExportedAt)
	assert.Len(t, doc.Programs, 4)
	assert.Len(t, doc.Editors, 4)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "a", doc.Tasks[0].ID)
}

func TestExportImport_RoundTrip(t *testing.T) {
	src, _ := newTestContainer(t,
		task("a", "12", "James", "2024-05-13", "2024-05-15"),
		task("b", "13", "Eason", "2024-05-16", "2024-05-17"),
	)
	path := filepath.Join(t.TempDir(), "backup.yaml")

	out, err := execute(newExportCommand(src), "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 task(s) to "+path)

	dst, store := newTestContainer(t)
	out, err = execute(newImportCommand(dst), path)

	require.NoError(t, err)
	assert.Equal(t, "Imported 4 program(s), 4 editor(s), 2 task(s)\n", out)
	require.Contains(t, store.Tasks, "a")
	assert.Equal(t, "2024-05-15", store.Tasks["a"].EndDate)
}

func TestImport_StdinSkipsUnusableTasks(t *testing.T) {
	c, store := newTestContainer(t)
	doc := `version: 1
tasks:
  - id: x
    show: DC Insiders
    editor: Eason
    startDate: "2024-05-20"
    endDate: "2024-05-18"
  - id: y
    show: DC Insiders
    editor: Eason
    startDate: "2024-05-20"
    endDate: "2024-05-21"
`
	cmd := newImportCommand(c)
	cmd.SetIn(bytes.NewBufferString(doc))

	out, err := execute(cmd, "-")

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 program(s), 0 editor(s), 1 task(s)")
	assert.Contains(t, out, "Skipped task x: "+domain.ErrInvertedInterval.Error())
	assert.NotContains(t, store.Tasks, "x")
	assert.Contains(t, store.Tasks, "y")
}

func TestImport_Replace(t *testing.T) {
	c, store := newTestContainer(t, task("old", "1", "James", "2024-05-01", "2024-05-02"))
	path := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`tasks:
  - id: new
    show: Correspondents
    editor: James
    startDate: "2024-05-03"
    endDate: "2024-05-04"
`), 0o600))

	_, err := execute(newImportCommand(c), "--replace", path)

	require.NoError(t, err)
	assert.NotContains(t, store.Tasks, "old")
	assert.Contains(t, store.Tasks, "new")
	assert.Empty(t, store.Editors)
}

func TestImport_Errors(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := execute(newImportCommand(c), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	cmd := newImportCommand(c)
	cmd.SetIn(strings.NewReader("version: 9\n"))
	_, err = execute(cmd, "-")
	assert.ErrorIs(t, err, transfer.ErrUnsupportedVersion)
}

// =============================================================================
// Serve Command Tests
// =============================================================================

func TestServe_StopsWithContext(t *testing.T) {
	c, _ := newTestContainer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newServeCommand(c)
	cmd.SetArgs([]string{"--addr", "127.0.0.1:0"})

	assert.NoError(t, cmd.ExecuteContext(ctx))
}

func TestServerLogger_FallsBackToNop(t *testing.T) {
	c, _ := newTestContainer(t)

	assert.Equal(t, zerolog.Disabled, serverLogger(c).GetLevel())
}
