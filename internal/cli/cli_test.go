package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 15, 10, 30, 0, 0, time.Local)

// newTestContainer creates a container backed by an in-memory store seeded with the default roster.
func newTestContainer(t *testing.T, tasks ...*domain.Task) (*app.Container, *testutil.MockScheduleStore) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store := testutil.NewMockScheduleStore()
	for _, e := range domain.DefaultEditors() {
		store.Editors[e.ID] = e
	}
	for _, p := range domain.DefaultPrograms() {
		store.Programs[p.ID] = p
	}
	store.AddTasks(tasks...)

	dataDir := t.TempDir()
	c := app.NewWithDeps(
		app.Config{DataDir: dataDir, StorePath: domain.StorePath(dataDir, domain.StoreConfig{})},
		store,
		&testutil.MockClock{NowTime: fixedNow},
		&testutil.MockIDGenerator{Prefix: "t"},
		&testutil.MockLogger{},
	)
	return c, store
}

func task(id, episode, editor, start, end string) *domain.Task {
	return &domain.Task{
		ID:        id,
		Show:      "Correspondents",
		Episode:   episode,
		Editor:    editor,
		StartDate: start,
		EndDate:   end,
		Version:   1,
	}
}

// execute runs cmd with args and returns everything written to stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// =============================================================================
// Root Command Tests
// =============================================================================

func TestRootCommand_NoArgsLaunchesTUI(t *testing.T) {
	c, _ := newTestContainer(t)

	called := false
	original := launchTUIFunc
	launchTUIFunc = func(_ context.Context, got *app.Container) error {
		called = true
		assert.Same(t, c, got)
		return nil
	}
	t.Cleanup(func() { launchTUIFunc = original })

	_, err := execute(NewRootCommand(c, "test"))

	require.NoError(t, err)
	assert.True(t, called)
}

func TestRootCommand_PrintsConfigWarnings(t *testing.T) {
	c, _ := newTestContainer(t)
	c.Settings.Warnings = []string{"unknown key: store.kind"}

	out, err := execute(NewRootCommand(c, "test"), "program", "ls")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: unknown key: store.kind")
}

func TestRootCommand_Groups(t *testing.T) {
	c, _ := newTestContainer(t)
	root := NewRootCommand(c, "test")

	groups := make(map[string]string)
	for _, sub := range root.Commands() {
		groups[sub.Name()] = sub.GroupID
	}

	assert.Equal(t, groupSetup, groups["init"])
	assert.Equal(t, groupSetup, groups["export"])
	assert.Equal(t, groupSchedule, groups["task"])
	assert.Equal(t, groupSchedule, groups["editor"])
	assert.Equal(t, groupViews, groups["calendar"])
	assert.Equal(t, groupViews, groups["serve"])
}

func TestRootCommand_Version(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := execute(NewRootCommand(c, "1.2.3"), "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}

func TestDataDirFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "absent", args: []string{"task", "ls"}, want: ""},
		{name: "separate value", args: []string{"--data-dir", "/tmp/a", "task", "ls"}, want: "/tmp/a"},
		{name: "equals form", args: []string{"task", "ls", "--data-dir=/tmp/b"}, want: "/tmp/b"},
		{name: "missing value", args: []string{"task", "--data-dir"}, want: ""},
		{name: "after terminator", args: []string{"task", "--", "--data-dir", "/tmp/c"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DataDirFromArgs(tt.args))
		})
	}
}

// =============================================================================
// Init Command Tests
// =============================================================================

func TestInitCommand_CreatesConfigAndSeeds(t *testing.T) {
	c, store := newTestContainer(t)
	store.Editors = make(map[string]*domain.Editor)
	store.Programs = make(map[string]*domain.Program)

	out, err := execute(newInitCommand(c))

	require.NoError(t, err)
	assert.True(t, store.Initialized)
	assert.Contains(t, out, "Initialized editflow in "+c.Config.DataDir)
	assert.Contains(t, out, "Created config file:")
	assert.Contains(t, out, "Seeded 4 editor(s) and 4 program(s)")
	assert.FileExists(t, domain.DataConfigPath(c.Config.DataDir))
}

func TestInitCommand_SecondRunKeepsConfig(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := execute(newInitCommand(c))
	require.NoError(t, err)

	out, err := execute(newInitCommand(c))

	require.NoError(t, err)
	assert.NotContains(t, out, "Created config file:")
	assert.NotContains(t, out, "Seeded")
}

func TestInitCommand_NoSeed(t *testing.T) {
	c, store := newTestContainer(t)
	store.Editors = make(map[string]*domain.Editor)

	out, err := execute(newInitCommand(c), "--no-seed")

	require.NoError(t, err)
	assert.NotContains(t, out, "Seeded")
	assert.Empty(t, store.Editors)
}

// =============================================================================
// Config Command Tests
// =============================================================================

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := execute(newConfigCommand(c))

	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "template")
	assert.Contains(t, out, "init")
}

func TestConfigShow_ListsSourcesAndEffectiveConfig(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := execute(newConfigCommand(c), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "[calendar]")
}

func TestConfigTemplate(t *testing.T) {
	out, err := execute(newConfigTemplateCommand())

	require.NoError(t, err)
	assert.Equal(t, domain.RenderConfigTemplate(domain.NewDefaultConfig()), out)
}

func TestConfigInit_RefusesToOverwrite(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := execute(newConfigCommand(c), "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created config file:")

	_, err = execute(newConfigCommand(c), "init")

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
