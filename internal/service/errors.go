package service

// ValidationError локально обнаруженная ошибка ввода.
// Блокирует сетевой вызов и показывается пользователю прямо в диалоге.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func newValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}
