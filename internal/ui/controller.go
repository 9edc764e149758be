package ui

import (
	"context"
	"time"

	"dailytodo/internal/logger"

	"go.uber.org/zap"
)

// Controller переводит действия пользователя в вызовы сервиса.
// На любую ошибку возвращается Notice, состояние при этом не меняется.
type Controller struct {
	service TaskService
	state   *State
	now     func() time.Time
}

func NewController(service TaskService, state *State) *Controller {
	return &Controller{
		service: service,
		state:   state,
		now:     time.Now,
	}
}

// WithClock подменяет источник текущей даты.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

func (c *Controller) State() *State {
	return c.state
}

func (c *Controller) Reload(ctx context.Context) *Notice {
	tasks, err := c.service.ListTasks(ctx)
	if err != nil {
		return noticeFromError(err)
	}
	c.state.Refresh(tasks, c.now())
	return nil
}

func (c *Controller) Add(ctx context.Context) *Notice {
	id, err := c.service.AddTask(ctx, c.state.Description, c.state.Priority, c.state.DueDate)
	if err != nil {
		return noticeFromError(err)
	}

	logger.Info("UI: Задача добавлена", zap.Int64("task_id", int64(id)))
	c.state.Description = ""
	return c.Reload(ctx)
}

func (c *Controller) CompleteSelected(ctx context.Context) *Notice {
	if err := c.service.CompleteTask(ctx, c.state.SelectedID()); err != nil {
		return noticeFromError(err)
	}
	return c.Reload(ctx)
}

func (c *Controller) DeleteSelected(ctx context.Context) *Notice {
	if err := c.service.DeleteTask(ctx, c.state.SelectedID()); err != nil {
		return noticeFromError(err)
	}
	return c.Reload(ctx)
}
