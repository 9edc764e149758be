package sqlite

import (
	"context"
	"embed"
	"errors"

	"dailytodo/internal/logger"
	repo "dailytodo/internal/repository"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Initialize создаёт таблицу tasks, если её ещё нет. Повторный вызов ничего
// не меняет, существующие строки не трогаются.
func (s *Storage) Initialize(ctx context.Context) error {
	logger.Info("Repository: Применение миграций", zap.String("path", s.path))

	if err := ctx.Err(); err != nil {
		return repo.NewStorageError("миграция", err)
	}

	// migrate закрывает переданный *sql.DB, поэтому ему нужен свой дескриптор
	db, err := s.open()
	if err != nil {
		logger.Error("Repository: Ошибка открытия базы для миграций", err)
		return repo.NewStorageError("миграция", err)
	}

	driver, err := msqlite.WithInstance(db, &msqlite.Config{MigrationsTable: s.migrationsTable})
	if err != nil {
		db.Close()
		logger.Error("Repository: Ошибка драйвера миграций", err)
		return repo.NewStorageError("миграция", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		driver.Close()
		logger.Error("Repository: Не удалось прочитать миграции", err)
		return repo.NewStorageError("миграция", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		source.Close()
		driver.Close()
		logger.Error("Repository: Ошибка создания мигратора", err)
		return repo.NewStorageError("миграция", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Repository: Схема актуальна")
			return nil
		}
		logger.Error("Repository: Не удалось применить миграции", err)
		return repo.NewStorageError("миграция", err)
	}

	logger.Info("Repository: Миграции применены")
	return nil
}
