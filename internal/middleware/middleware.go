package middleware

import (
	"context"
	"fmt"
	"time"

	"dailytodo/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Action - одно действие пользователя: имя команды и её аргументы.
type Action struct {
	Name string
	Args []string
}

type Handler func(ctx context.Context, action Action) error

type Middleware func(Handler) Handler

type contextKey string

const ActionIDKey contextKey = "action_id"

// Chain оборачивает h так, что первый middleware выполняется первым.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func ActionID(next Handler) Handler {
	return func(ctx context.Context, action Action) error {
		if GetActionID(ctx) == "" {
			ctx = context.WithValue(ctx, ActionIDKey, uuid.New().String())
		}
		return next(ctx, action)
	}
}

func GetActionID(ctx context.Context) string {
	if id, ok := ctx.Value(ActionIDKey).(string); ok {
		return id
	}
	return ""
}

// Severe помечает ошибки, которые надо логировать уровнем error.
type Severe interface {
	Severe() bool
}

func Logging(next Handler) Handler {
	return func(ctx context.Context, action Action) error {
		start := time.Now()
		actionID := GetActionID(ctx)

		logger.Info(
			"CLI_IN: Начало действия",
			zap.String("action_id", actionID),
			zap.String("action", action.Name),
			zap.Int("args", len(action.Args)),
		)

		err := next(ctx, action)

		logLevel := zapcore.InfoLevel
		fields := []zap.Field{
			zap.String("action_id", actionID),
			zap.String("action", action.Name),
			zap.Duration("ms", time.Since(start)),
		}
		if err != nil {
			logLevel = zapcore.WarnLevel
			if s, ok := err.(Severe); ok && s.Severe() {
				logLevel = zapcore.ErrorLevel
			}
			fields = append(fields, zap.Error(err))
		}

		logger.Log(logLevel, "CLI_OUT: Завершение действия", fields...)
		return err
	}
}

// Recover превращает панику обработчика в ошибку, чтобы цикл ввода продолжал работу.
func Recover(next Handler) Handler {
	return func(ctx context.Context, action Action) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("CLI: Паника при выполнении действия", nil,
					zap.String("action_id", GetActionID(ctx)),
					zap.String("action", action.Name),
					zap.Any("panic", r))
				err = fmt.Errorf("действие %s прервано: %v", action.Name, r)
			}
		}()
		return next(ctx, action)
	}
}
