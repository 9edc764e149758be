package service

import (
	"context"
	"time"

	"dailytodo/internal/models/task"
)

type TaskRepository interface {
	Initialize(context.Context) error
	HealthCheck(context.Context) error
	Create(context.Context, string, task.Priority, time.Time) (task.ID, error)
	ListAll(context.Context) ([]*task.Task, error)
	SetCompleted(context.Context, task.ID, bool) error
	Delete(context.Context, task.ID) error
}
