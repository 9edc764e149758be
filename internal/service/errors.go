package service

import (
	"errors"
	"fmt"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeSelection  = "SELECTION_ERROR"
	CodeStorage    = "STORAGE_ERROR"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: reason,
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewSelectionError(action string) *BusinessError {
	return &BusinessError{
		Code:    CodeSelection,
		Message: fmt.Sprintf("no task selected to %s", action),
		Details: map[string]any{
			"action": action,
		},
	}
}

func NewStorageError(op string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeStorage,
		Message: op,
		Details: map[string]any{
			"op": op,
		},
		Err: err,
	}
}

func hasCode(err error, code string) bool {
	var busErr *BusinessError
	return errors.As(err, &busErr) && busErr.Code == code
}

func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

func IsSelection(err error) bool {
	return hasCode(err, CodeSelection)
}

func IsStorage(err error) bool {
	return hasCode(err, CodeStorage)
}
