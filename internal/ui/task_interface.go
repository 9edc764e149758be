package ui

import (
	"context"
	"time"

	"dailytodo/internal/models/task"
)

type TaskService interface {
	AddTask(context.Context, string, task.Priority, time.Time) (task.ID, error)
	ListTasks(context.Context) ([]*task.Task, error)
	CompleteTask(context.Context, *task.ID) error
	DeleteTask(context.Context, *task.ID) error
}
