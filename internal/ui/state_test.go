package ui_test

import (
	"testing"
	"time"

	"dailytodo/internal/models/task"
	"dailytodo/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Defaults(t *testing.T) {
	state := ui.NewState(time.Date(2024, 1, 8, 18, 30, 0, 0, time.UTC))

	assert.Equal(t, task.PriorityMedium, state.Priority)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), state.DueDate)
	assert.Empty(t, state.Description)
	assert.Nil(t, state.SelectedID())
	assert.Equal(t, -1, state.SelectedIndex())
}

func TestState_SelectMapsIndexToID(t *testing.T) {
	state := ui.NewState(today)
	state.Refresh([]*task.Task{
		{ID: 3, Description: "a", Priority: task.PriorityLow, DueDate: today},
		{ID: 17, Description: "b", Priority: task.PriorityLow, DueDate: today},
	}, today)

	require.NoError(t, state.Select(1))
	id := state.SelectedID()
	require.NotNil(t, id)
	assert.Equal(t, task.ID(17), *id)

	assert.Error(t, state.Select(2))
	assert.Error(t, state.Select(-1))
	assert.Equal(t, 1, state.SelectedIndex(), "неудачный выбор не меняет текущий")

	state.ClearSelection()
	assert.Nil(t, state.SelectedID())
}

func TestState_RefreshClearsSelection(t *testing.T) {
	state := ui.NewState(today)
	tasks := []*task.Task{{ID: 1, Description: "a", Priority: task.PriorityLow, DueDate: today}}
	state.Refresh(tasks, today)
	require.NoError(t, state.Select(0))

	state.Refresh(tasks, today)
	assert.Nil(t, state.SelectedID())
}

func TestState_RowsIsCopy(t *testing.T) {
	state := ui.NewState(today)
	state.Refresh([]*task.Task{{ID: 1, Description: "a", Priority: task.PriorityLow, DueDate: today}}, today)

	rows := state.Rows()
	rows[0].TaskID = 99

	require.NoError(t, state.Select(0))
	assert.Equal(t, task.ID(1), *state.SelectedID())
}

func TestFromTask(t *testing.T) {
	yesterday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		task      *task.Task
		text      string
		highlight bool
		overdue   bool
	}{
		{
			name:      "high priority pending",
			task:      &task.Task{ID: 1, Description: "Pay rent", Priority: task.PriorityHigh, DueDate: yesterday},
			text:      "[ ] Pay rent - Priority: High, Due: 2024-01-07",
			highlight: true,
			overdue:   true,
		},
		{
			name: "completed overdue is not flagged",
			task: &task.Task{ID: 2, Description: "Walk", Priority: task.PriorityLow, DueDate: yesterday, Completed: true},
			text: "[x] Walk - Priority: Low, Due: 2024-01-07",
		},
		{
			name: "unreadable legacy date",
			task: &task.Task{ID: 3, Description: "Old", Priority: task.PriorityMedium},
			text: "[ ] Old - Priority: Medium, Due: -",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ui.FromTask(4, tt.task, today)
			assert.Equal(t, 4, row.Index)
			assert.Equal(t, tt.task.ID, row.TaskID)
			assert.Equal(t, tt.text, row.Text)
			assert.Equal(t, tt.highlight, row.Highlight)
			assert.Equal(t, tt.overdue, row.Overdue)
		})
	}
}
