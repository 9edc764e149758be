package task_test

import (
	"testing"
	"time"

	"dailytodo/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    task.Priority
		wantErr bool
	}{
		{in: "Low", want: task.PriorityLow},
		{in: "medium", want: task.PriorityMedium},
		{in: " HIGH ", want: task.PriorityHigh},
		{in: "urgent", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := task.ParsePriority(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	_, err := task.ParsePriority("urgent")
	assert.EqualError(t, err, `unknown priority "urgent": expected Low, Medium or High`)

	assert.False(t, task.Priority("Urgent").Valid())
	assert.Equal(t, task.PriorityMedium, task.DefaultPriority)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	got, err := task.ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = task.ParseDate("1/10/24")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = task.ParseDate("10.01.2024")
	assert.EqualError(t, err, `invalid date "10.01.2024": expected YYYY-MM-DD`)

	assert.Equal(t, "2024-01-10", task.FormatDate(want))
}

func TestDateOf(t *testing.T) {
	local := time.Date(2024, 1, 10, 23, 59, 0, 0, time.FixedZone("UTC+5", 5*3600))
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), task.DateOf(local))
}

func TestTask_IsOverdue(t *testing.T) {
	today := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	past := &task.Task{DueDate: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)}
	sameDay := &task.Task{DueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	donePast := &task.Task{DueDate: past.DueDate, Completed: true}

	assert.True(t, past.IsOverdue(today))
	assert.False(t, sameDay.IsOverdue(today))
	assert.False(t, donePast.IsOverdue(today))
}
