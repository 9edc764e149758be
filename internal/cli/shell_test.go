package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dailytodo/internal/cli"
	"dailytodo/internal/repository/task/inmemory"
	"dailytodo/internal/service"
	"dailytodo/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

type fixture struct {
	shell   *cli.Shell
	ctrl    *ui.Controller
	storage *inmemory.TaskStorage
	out     *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storage := inmemory.NewTaskStorage()
	svc := service.NewTaskService(storage)
	ctrl := ui.NewController(&svc, ui.NewState(today)).WithClock(clock)
	out := &bytes.Buffer{}
	return &fixture{
		shell:   cli.NewShell(ctrl, out).WithClock(clock),
		ctrl:    ctrl,
		storage: storage,
		out:     out,
	}
}

// run выполняет строку и возвращает то, что напечатала оболочка.
func (f *fixture) run(t *testing.T, line string) string {
	t.Helper()
	f.out.Reset()
	quit := f.shell.Execute(context.Background(), line)
	require.False(t, quit, "команда %q не должна завершать работу", line)
	return f.out.String()
}

func TestShell_AddCompleteDelete(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "list")
	assert.Contains(t, out, "No tasks yet")

	out = f.run(t, "add Buy milk")
	assert.Contains(t, out, "  1. [ ] Buy milk - Priority: Medium, Due: 2024-01-08")

	out = f.run(t, "select 1")
	assert.Contains(t, out, ">   1. [ ] Buy milk")

	out = f.run(t, "done")
	assert.Contains(t, out, "[x] Buy milk")
	assert.Equal(t, -1, f.ctrl.State().SelectedIndex())

	f.run(t, "select 1")
	out = f.run(t, "rm")
	assert.Contains(t, out, "No tasks yet")
}

func TestShell_PriorityAndDue(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "Priority: High\n", f.run(t, "priority HIGH"))
	assert.Equal(t, "Due: 2024-01-10\n", f.run(t, "due +2"))

	out := f.run(t, "add Pay rent")
	assert.Contains(t, out, " !  1. [ ] Pay rent - Priority: High, Due: 2024-01-10")
	assert.NotContains(t, out, "(overdue)")

	// старый формат календаря тоже принимается
	f.run(t, "priority low")
	assert.Equal(t, "Due: 2024-01-05\n", f.run(t, "due 1/5/24"))
	out = f.run(t, "add Call mom")
	assert.Contains(t, out, "[ ] Call mom - Priority: Low, Due: 2024-01-05 (overdue)")

	assert.Equal(t, "Due: 2024-01-09\n", f.run(t, "due tomorrow"))
	assert.Equal(t, "Due: 2024-01-08\n", f.run(t, "due today"))

	out = f.run(t, "form")
	assert.Contains(t, out, "Priority: Low, Due: 2024-01-08")
}

func TestShell_InputErrors(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		line string
		want string
	}{
		{"add", "warning: Input Error: empty description"},
		{"add    ", "warning: Input Error: empty description"},
		{"done", "warning: Selection Error: no task selected to mark complete"},
		{"rm", "warning: Selection Error: no task selected to delete"},
		{"priority urgent", "error: unknown priority \"urgent\""},
		{"priority", "usage: priority"},
		{"due yesterday", "error: invalid date \"yesterday\""},
		{"due +x", "error: invalid day offset \"+x\""},
		{"select 1", "error: no task number 1"},
		{"select one", "error: not a number: one"},
		{"frobnicate", "unknown command: frobnicate"},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			out := f.run(t, tc.line)
			assert.Contains(t, out, tc.want)
		})
	}
	assert.Empty(t, f.ctrl.State().Rows())
}

func TestShell_StorageError(t *testing.T) {
	f := newFixture(t)
	f.run(t, "add first")

	f.storage.FailWith(errors.New("disk is read-only"))
	out := f.run(t, "add second")
	assert.Contains(t, out, "error: Database Error: An error occurred: disk is read-only")
	assert.Equal(t, "second", f.ctrl.State().Description)

	f.storage.FailWith(nil)
	out = f.run(t, "add")
	assert.Contains(t, out, "2. [ ] second")
}

func TestShell_AddKeepsSpacing(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "  add   Call  mom   at 5")
	assert.Contains(t, out, "[ ] Call  mom   at 5 - Priority: Medium")

	tasks, err := f.storage.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Call  mom   at 5", tasks[0].Description)
}

func TestShell_HelpAndQuit(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "help")
	for _, name := range []string{"list", "priority", "due", "add", "select", "unselect", "done", "rm", "quit"} {
		assert.Contains(t, out, name)
	}

	assert.Empty(t, f.run(t, "   "))

	for _, line := range []string{"quit", "exit", "QUIT"} {
		assert.True(t, f.shell.Execute(context.Background(), line), line)
	}
}

func TestShell_Unselect(t *testing.T) {
	f := newFixture(t)
	f.run(t, "add a")
	f.run(t, "select 1")

	f.run(t, "unselect")
	out := f.run(t, "done")
	assert.Contains(t, out, "Selection Error")

	tasks, err := f.storage.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed)
}

func TestShell_Names(t *testing.T) {
	f := newFixture(t)
	names := f.shell.Names()

	assert.True(t, len(names) > 10)
	assert.Contains(t, names, "ls")
	assert.Contains(t, names, "delete")
	assert.True(t, strings.Compare(names[0], names[len(names)-1]) < 0)
}
