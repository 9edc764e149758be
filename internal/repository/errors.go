package repository

import "fmt"

// StorageError означает, что носитель не смог выполнить чтение или запись.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("хранилище: %s: %s", e.Op, e.Err.Error())
	}
	return fmt.Sprintf("хранилище: %s", e.Op)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
