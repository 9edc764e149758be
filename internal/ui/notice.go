package ui

import (
	"errors"

	"dailytodo/internal/logger"
	repo "dailytodo/internal/repository"
	"dailytodo/internal/service"

	"go.uber.org/zap"
)

type Severity string

const SeverityWarning Severity = "warning"
const SeverityError Severity = "error"

// Notice - сообщение пользователю вместо всплывающего окна.
type Notice struct {
	Severity Severity
	Title    string
	Message  string
}

func (n *Notice) String() string {
	return n.Title + ": " + n.Message
}

// Error позволяет вернуть Notice туда, где ожидается error.
func (n *Notice) Error() string {
	return n.String()
}

func (n *Notice) Severe() bool {
	return n.Severity == SeverityError
}

func noticeFromError(err error) *Notice {
	if err == nil {
		return nil
	}

	var busErr *service.BusinessError
	if !errors.As(err, &busErr) {
		logger.Error("UI: Необработанная ошибка", err)
		return &Notice{Severity: SeverityError, Title: "Error", Message: err.Error()}
	}

	severity, title := mapBusinessErrorToNotice(busErr.Code)
	message := busErr.Message
	if busErr.Code == service.CodeStorage && busErr.Err != nil {
		message = "An error occurred: " + storageCause(busErr.Err)
	}

	logger.Warn("UI: Бизнес-ошибка",
		zap.String("error_code", busErr.Code),
		zap.Error(err),
		zap.String("severity", string(severity)))

	return &Notice{Severity: severity, Title: title, Message: message}
}

// storageCause отрезает служебную операцию: пользователю нужна только причина носителя.
func storageCause(err error) string {
	var storageErr *repo.StorageError
	if errors.As(err, &storageErr) && storageErr.Err != nil {
		return storageErr.Err.Error()
	}
	return err.Error()
}

func mapBusinessErrorToNotice(code string) (Severity, string) {
	switch code {
	case service.CodeValidation:
		return SeverityWarning, "Input Error"
	case service.CodeSelection:
		return SeverityWarning, "Selection Error"
	case service.CodeStorage:
		return SeverityError, "Database Error"
	default:
		return SeverityError, "Error"
	}
}
