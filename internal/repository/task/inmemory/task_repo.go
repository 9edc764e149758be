package inmemory

import (
	"context"
	"sync"
	"time"

	"dailytodo/internal/logger"
	"dailytodo/internal/models/task"
	repo "dailytodo/internal/repository"
)

// TaskStorage хранит задачи в памяти процесса. Данные не переживают
// перезапуск, поэтому хранилище годится для тестов и пробного запуска.
type TaskStorage struct {
	storage map[task.ID]*task.Task
	mtx     *sync.RWMutex
	ids     []task.ID
	nextID  task.ID
	failErr error
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[task.ID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []task.ID{},
		nextID:  1,
	}
}

// FailWith заставляет все последующие операции возвращать StorageError с err.
// nil снимает отказ.
func (s *TaskStorage) FailWith(err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.failErr = err
}

func (s *TaskStorage) failure(op string) error {
	if s.failErr != nil {
		return repo.NewStorageError(op, s.failErr)
	}
	return nil
}

func (s *TaskStorage) Initialize(ctx context.Context) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.failure("миграция")
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if err := s.failure("проверка соединения"); err != nil {
		return err
	}
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, description string, priority task.Priority, dueDate time.Time) (task.ID, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.failure("добавление задачи"); err != nil {
		return 0, err
	}

	id := s.nextID
	s.nextID++

	s.storage[id] = &task.Task{
		ID:          id,
		Description: description,
		Priority:    priority,
		DueDate:     task.DateOf(dueDate),
	}
	s.ids = append(s.ids, id)
	return id, nil
}

// ListAll возвращает копии, чтобы вызывающий не мог изменить хранилище.
func (s *TaskStorage) ListAll(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if err := s.failure("получение задач"); err != nil {
		return nil, err
	}

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		copied := *s.storage[id]
		res = append(res, &copied)
	}
	return res, nil
}

func (s *TaskStorage) SetCompleted(ctx context.Context, id task.ID, completed bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.failure("обновление задачи"); err != nil {
		return err
	}

	if t, ok := s.storage[id]; ok {
		t.Completed = completed
	}
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id task.ID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.failure("удаление задачи"); err != nil {
		return err
	}

	if _, ok := s.storage[id]; !ok {
		return nil
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

func (s *TaskStorage) Close() error {
	return nil
}
