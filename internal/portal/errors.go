package portal

import (
	"errors"
	"fmt"
)

// ErrAuth нет действующей сессии или сервер ответил 401.
// Обрабатывается единообразно: сброс сессии и приглашение в /login.
var ErrAuth = errors.New("portal: not authenticated")

// RequestError ответ сервера с не-2xx статусом.
// Message показывается пользователю дословно.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("portal: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("portal: request failed with status %d", e.Status)
}

// IsForbidden проверяет, является ли ошибка отказом в доступе
func (e *RequestError) IsForbidden() bool {
	return e.Status == 403
}

// NetworkError транспортная ошибка: сервер недоступен или соединение оборвано
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("portal: unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage извлекает сообщение сервера из RequestError, либо возвращает fallback
func UserMessage(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
