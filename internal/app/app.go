package app

import (
	"context"
	"fmt"
	"time"

	"dailytodo/internal/config"
	"dailytodo/internal/logger"
	"dailytodo/internal/repository/task/inmemory"
	"dailytodo/internal/repository/task/sqlite"
	"dailytodo/internal/service"
	"dailytodo/internal/ui"

	"go.uber.org/zap"
)

type storage interface {
	service.TaskRepository
	Close() error
}

type App struct {
	config     *config.Config
	repository storage
	service    *service.TaskService
	controller *ui.Controller
	shutdowns  []func() // функции для завершения работы, выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.File); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repo, err := a.openRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.repository = repo
	a.shutdowns = append(a.shutdowns, func() {
		if err := repo.Close(); err != nil {
			logger.Error("App: Ошибка закрытия хранилища", err)
		}
	})

	svc := service.NewTaskService(repo)
	a.service = &svc

	if err := a.service.Initialize(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := a.service.HealthCheck(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.controller = ui.NewController(a.service, ui.NewState(time.Now()))

	logger.Info("App: Приложение готово", zap.String("repository", a.config.Repository.Type))
	return a, nil
}

func (a *App) openRepository(ctx context.Context) (storage, error) {
	switch a.config.Repository.Type {
	case config.RepositoryInMemory:
		logger.Warn("App: Хранилище в памяти, задачи не сохранятся после выхода")
		return inmemory.NewTaskStorage(), nil
	case config.RepositorySQLite:
		s, err := sqlite.New(ctx, a.config.Database.Path,
			sqlite.WithBusyTimeout(a.config.Database.BusyTimeout),
			sqlite.WithSlowQuery(a.config.Database.SlowQuery),
		)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

func (a *App) Controller() *ui.Controller {
	return a.controller
}

func (a *App) Close() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
