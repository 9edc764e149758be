package ui

import (
	"fmt"
	"time"

	"dailytodo/internal/models/task"
)

// Row - одна строка списка. TaskID хранится рядом с текстом и никогда
// не извлекается из него.
type Row struct {
	Index     int
	TaskID    task.ID
	Text      string
	Highlight bool
	Overdue   bool
}

func FromTask(index int, t *task.Task, today time.Time) Row {
	mark := " "
	if t.Completed {
		mark = "x"
	}

	due := "-"
	if !t.DueDate.IsZero() {
		due = task.FormatDate(t.DueDate)
	}

	return Row{
		Index:     index,
		TaskID:    t.ID,
		Text:      fmt.Sprintf("[%s] %s - Priority: %s, Due: %s", mark, t.Description, t.Priority, due),
		Highlight: t.Priority == task.PriorityHigh,
		Overdue:   !t.DueDate.IsZero() && t.IsOverdue(today),
	}
}

func FromTaskList(tasks []*task.Task, today time.Time) []Row {
	result := make([]Row, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(i, t, today)
	}
	return result
}
