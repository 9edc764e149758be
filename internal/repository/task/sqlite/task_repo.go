package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dailytodo/internal/logger"
	"dailytodo/internal/models/task"
	repo "dailytodo/internal/repository"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Storage struct {
	db              *sql.DB
	path            string
	busyTimeout     time.Duration
	slowQuery       time.Duration
	migrationsTable string
}

func New(ctx context.Context, path string, opts ...Option) (*Storage, error) {
	s := &Storage{
		path:            path,
		busyTimeout:     5 * time.Second,
		slowQuery:       100 * time.Millisecond,
		migrationsTable: "schema_migrations",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Repository: Не удалось создать каталог базы", err, zap.String("path", path))
			return nil, repo.NewStorageError("создание каталога", err)
		}
	}

	db, err := s.open()
	if err != nil {
		logger.Error("Repository: Ошибка открытия базы", err, zap.String("path", path))
		return nil, repo.NewStorageError("открытие базы", err)
	}

	// один писатель: файл принадлежит только этому процессу
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		logger.Error("Repository: Неудачная проверка ping", err, zap.String("path", path))
		return nil, repo.NewStorageError("проверка соединения ping", err)
	}

	s.db = db
	logger.Info("Repository: Успешное подключение к SQLite", zap.String("path", path))
	return s, nil
}

func (s *Storage) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", s.path, s.busyTimeout.Milliseconds())
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return db, nil
}

func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) Close() error {
	logger.Info("Repository: Закрытие соединения SQLite", zap.String("path", s.path))
	return s.db.Close()
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return repo.NewStorageError("проверка соединения ping", err)
	}
	return nil
}

// withTx выдаёт fn отдельное соединение и транзакцию. При любом выходе
// транзакция либо фиксируется, либо откатывается, а соединение закрывается.
func (s *Storage) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	start := time.Now()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось получить соединение", err, zap.String("op", op))
		return repo.NewStorageError(op, err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("Repository: Не удалось начать транзакцию", err, zap.String("op", op))
		return repo.NewStorageError(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		logger.Error("Repository: Ошибка выполнения запроса", err,
			zap.String("op", op),
			zap.Duration("ms", time.Since(start)))
		return repo.NewStorageError(op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err, zap.String("op", op))
		return repo.NewStorageError(op, err)
	}

	if time.Since(start) > s.slowQuery {
		logger.Warn("Repository: Медленная операция",
			zap.String("op", op),
			zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, description string, priority task.Priority, dueDate time.Time) (task.ID, error) {
	var id task.ID

	query := `INSERT INTO tasks
				(description, completed, priority, due_date)
				VALUES (?, ?, ?, ?)
				RETURNING id`

	err := s.withTx(ctx, "добавление задачи", func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			description,
			false,
			string(priority),
			task.FormatDate(dueDate),
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Repository: Задача добавлена", zap.Int64("task_id", int64(id)))
	return id, nil
}

// ListAll возвращает все задачи в порядке добавления.
func (s *Storage) ListAll(ctx context.Context) ([]*task.Task, error) {
	// COALESCE нужен для строк, записанных старой версией без ограничений NOT NULL
	query := `SELECT
				id,
				COALESCE(description, ''),
				COALESCE(completed, 0),
				COALESCE(priority, 'Medium'),
				COALESCE(due_date, '')
				FROM tasks
				ORDER BY id`

	tasks := []*task.Task{}

	err := s.withTx(ctx, "получение задач", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("получение задач: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			t := &task.Task{}
			var priority, dueDate string

			if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &priority, &dueDate); err != nil {
				return fmt.Errorf("сканирование задачи: %w", err)
			}

			t.Priority = task.Priority(priority)
			if d, err := task.ParseDate(dueDate); err != nil {
				logger.Warn("Repository: Не удалось разобрать дату",
					zap.Int64("task_id", int64(t.ID)),
					zap.String("due_date", dueDate))
			} else {
				t.DueDate = d
			}

			tasks = append(tasks, t)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("итерация по строкам: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// SetCompleted ничего не делает, если задачи с таким id нет.
func (s *Storage) SetCompleted(ctx context.Context, id task.ID, completed bool) error {
	query := `UPDATE tasks
			SET completed = ?
			WHERE id = ?`

	return s.withTx(ctx, "обновление задачи", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, completed, int64(id))
		if err != nil {
			return err
		}
		logMissing(res, id, "обновление")
		return nil
	})
}

// Delete ничего не делает, если задачи с таким id нет.
func (s *Storage) Delete(ctx context.Context, id task.ID) error {
	query := `DELETE FROM tasks
				WHERE id = ?`

	return s.withTx(ctx, "удаление задачи", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, int64(id))
		if err != nil {
			return err
		}
		logMissing(res, id, "удаление")
		return nil
	})
}

func logMissing(res sql.Result, id task.ID, op string) {
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		logger.Info("Repository: Задача не найдена, пропуск",
			zap.String("op", op),
			zap.Int64("task_id", int64(id)))
	}
}
