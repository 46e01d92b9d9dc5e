package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoSession       = errors.New("no active session")
	ErrGroupNotFound   = errors.New("group not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrRequestNotFound = errors.New("join request not found")
	ErrNotAdmin        = errors.New("user is not a group admin")
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidFormat   = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Сообщения RequestError показываются дословно: их пишет сервер портала.
func ErrorMessage(err error) string {
	var validationErr *service.ValidationError
	var requestErr *portal.RequestError
	var networkErr *portal.NetworkError

	switch {
	case errors.Is(err, portal.ErrAuth), errors.Is(err, ErrNoSession):
		return "🔒 Сессия истекла или вы не вошли. Используйте /login"
	case errors.As(err, &validationErr):
		return "⚠️ " + validationErr.Msg
	case errors.Is(err, service.ErrCreatorRole):
		return "❌ Роль создателя группы изменить нельзя"
	case errors.Is(err, service.ErrSelfRole):
		return "❌ Свою роль так поменять нельзя. Чтобы уйти из группы, используйте кнопку выхода"
	case errors.Is(err, service.ErrCreatorRemove):
		return "❌ Создателя группы может вывести только он сам"
	case errors.As(err, &requestErr):
		if requestErr.IsForbidden() {
			if requestErr.Message != "" {
				return "⛔️ " + requestErr.Message
			}
			return "⛔️ Недостаточно прав для этого действия"
		}
		if requestErr.Message != "" {
			return "❌ " + requestErr.Message
		}
		return "❌ Сервер отклонил запрос"
	case errors.As(err, &networkErr):
		return "📡 Не удалось связаться с сервером. Попробуйте позже"
	case errors.Is(err, ErrGroupNotFound):
		return "❌ Группа не найдена"
	case errors.Is(err, ErrMemberNotFound):
		return "❌ Участник не найден"
	case errors.Is(err, ErrRequestNotFound):
		return "❌ Заявка не найдена"
	case errors.Is(err, ErrNotAdmin):
		return "❌ Эта функция доступна только админам группы"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}

// IsMessageNotModifiedError проверяет ошибку Telegram "message is not modified".
// Она возникает при повторном нажатии кнопки и не является настоящей ошибкой.
func IsMessageNotModifiedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "message is not modified")
}
