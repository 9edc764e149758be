package sqlite

import "time"

type Option func(*Storage)

// WithBusyTimeout задаёт, сколько SQLite ждёт освобождения файла.
func WithBusyTimeout(timeout time.Duration) Option {
	if timeout <= 0 {
		return nil
	}
	return func(s *Storage) {
		s.busyTimeout = timeout
	}
}

// WithSlowQuery задаёт порог, после которого запрос логируется как медленный.
func WithSlowQuery(threshold time.Duration) Option {
	if threshold <= 0 {
		return nil
	}
	return func(s *Storage) {
		s.slowQuery = threshold
	}
}

func WithMigrationsTable(name string) Option {
	if name == "" {
		return nil
	}
	return func(s *Storage) {
		s.migrationsTable = name
	}
}
