package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"истёкшая сессия",
			fmt.Errorf("GET /groups/all: %w", portal.ErrAuth),
			"🔒 Сессия истекла или вы не вошли. Используйте /login",
		},
		{
			"ошибка валидации",
			&service.ValidationError{Msg: "Ключ группы не может быть пустым"},
			"⚠️ Ключ группы не может быть пустым",
		},
		{
			"роль создателя",
			service.ErrCreatorRole,
			"❌ Роль создателя группы изменить нельзя",
		},
		{
			"сообщение сервера дословно",
			&portal.RequestError{Status: 409, Message: "Группа заполнена"},
			"❌ Группа заполнена",
		},
		{
			"отказ в доступе",
			&portal.RequestError{Status: 403, Message: "Недостаточно прав"},
			"⛔️ Недостаточно прав",
		},
		{
			"отказ в доступе без сообщения",
			&portal.RequestError{Status: 403},
			"⛔️ Недостаточно прав для этого действия",
		},
		{
			"сетевая ошибка",
			&portal.NetworkError{Err: errors.New("connection refused")},
			"📡 Не удалось связаться с сервером. Попробуйте позже",
		},
		{
			"неизвестная ошибка",
			errors.New("boom"),
			"❌ Произошла ошибка",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.False(t, IsMessageNotModifiedError(errors.New("bad request")))
	assert.True(t, IsMessageNotModifiedError(errors.New("Bad Request: message is not modified")))
}
