package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"dailytodo/internal/logger"
	"dailytodo/internal/models/task"
	repo "dailytodo/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const otelName = "dailytodo/internal/service"

// здесь происходит проверка ввода и выбора перед обращением к хранилищу

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(otelName).Start(ctx, name)
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *TaskService) Initialize(ctx context.Context) error {
	if err := s.repo.Initialize(ctx); err != nil {
		return mapRepoError("инициализация хранилища", err)
	}
	return nil
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", mapRepoError("проверка соединения", err))
	}
	return nil
}

func (s *TaskService) AddTask(ctx context.Context, description string, priority task.Priority, dueDate time.Time) (id task.ID, err error) {
	ctx, span := startSpan(ctx, "TaskService.AddTask")
	defer func() { finishSpan(span, err) }()

	if err := validateNewTask(description, priority, dueDate); err != nil {
		logger.Info("Service: Неверный ввод", zap.Error(err))
		return 0, err
	}

	id, err = s.repo.Create(ctx, description, priority, task.DateOf(dueDate))
	if err != nil {
		return 0, mapRepoError("добавление задачи", err)
	}

	span.SetAttributes(attribute.Int64("task.id", int64(id)))
	return id, nil
}

func (s *TaskService) ListTasks(ctx context.Context) (tasks []*task.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.ListTasks")
	defer func() { finishSpan(span, err) }()

	tasks, err = s.repo.ListAll(ctx)
	if err != nil {
		return nil, mapRepoError("получение задач", err)
	}

	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	return tasks, nil
}

func (s *TaskService) CompleteTask(ctx context.Context, selected *task.ID) (err error) {
	ctx, span := startSpan(ctx, "TaskService.CompleteTask")
	defer func() { finishSpan(span, err) }()

	if selected == nil {
		logger.Info("Service: Задача не выбрана", zap.String("action", "complete"))
		return NewSelectionError("mark complete")
	}
	span.SetAttributes(attribute.Int64("task.id", int64(*selected)))

	if err := s.repo.SetCompleted(ctx, *selected, true); err != nil {
		return mapRepoError("обновление задачи", err)
	}
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, selected *task.ID) (err error) {
	ctx, span := startSpan(ctx, "TaskService.DeleteTask")
	defer func() { finishSpan(span, err) }()

	if selected == nil {
		logger.Info("Service: Задача не выбрана", zap.String("action", "delete"))
		return NewSelectionError("delete")
	}
	span.SetAttributes(attribute.Int64("task.id", int64(*selected)))

	if err := s.repo.Delete(ctx, *selected); err != nil {
		return mapRepoError("удаление задачи", err)
	}
	return nil
}

func validateNewTask(description string, priority task.Priority, dueDate time.Time) error {
	err := validation.Errors{
		"description": validation.Validate(strings.TrimSpace(description),
			validation.Required.Error("empty description")),
		"priority": validation.Validate(priority,
			validation.Required.Error("empty priority"),
			validation.In(task.PriorityLow, task.PriorityMedium, task.PriorityHigh).Error("unknown priority")),
		"due_date": validation.Validate(dueDate,
			validation.Required.Error("empty due date")),
	}.Filter()
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return NewValidationError("", err.Error())
	}

	// порядок полей фиксирован, чтобы первая причина была предсказуемой
	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fieldOrder(fields[i]) < fieldOrder(fields[j]) })

	first := fields[0]
	busErr := NewValidationError(first, fieldErrs[first].Error())
	for _, field := range fields[1:] {
		busErr.Details[field] = fieldErrs[field].Error()
	}
	return busErr
}

func fieldOrder(field string) int {
	switch field {
	case "description":
		return 0
	case "priority":
		return 1
	default:
		return 2
	}
}

func mapRepoError(op string, err error) error {
	var storageErr *repo.StorageError
	if errors.As(err, &storageErr) {
		logger.Error("Service: Ошибка хранилища", err, zap.String("op", op))
		return NewStorageError(op, err)
	}
	logger.Error("Service: Неизвестная ошибка хранилища", err, zap.String("op", op))
	return NewStorageError(op, err)
}
