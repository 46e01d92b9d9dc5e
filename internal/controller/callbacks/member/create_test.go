package member

import (
	"testing"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/state"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

// Мастер создания группы чередует текстовые шаги и кнопочные экраны,
// переключая состояния между ними. Накопленный черновик обязан пережить
// все переходы вплоть до подтверждения.
func TestReadCreateDraft_SurvivesWizardStates(t *testing.T) {
	sm := state.NewAdapter(state.NewManager())
	const telegramID int64 = 1

	sm.SetState(telegramID, stateCreateGroupName)
	sm.SetData(telegramID, CreateNameKey, "Матанализ")

	sm.SetState(telegramID, "create_group_description")
	sm.SetData(telegramID, CreateDescriptionKey, "Готовимся к экзамену")

	// Описание введено, дальше кнопки
	sm.SetState(telegramID, stateCreateGroupButtons)
	sm.SetData(telegramID, CreatePrivacyKey, model.PrivacyPublic)

	// "Без лимита" тоже кнопка
	sm.SetData(telegramID, CreateLimitKey, 0)
	sm.SetState(telegramID, stateCreateGroupButtons)

	sm.SetData(telegramID, CreateCourseIDKey, "math")
	sm.SetData(telegramID, CreateCourseNameKey, "Математика")

	draft := ReadCreateDraft(sm, telegramID)
	assert.Equal(t, "Матанализ", draft.Name)
	assert.Equal(t, "Готовимся к экзамену", draft.Description)
	assert.Equal(t, model.PrivacyPublic, draft.Privacy)
	assert.False(t, draft.HasPasskey)
	assert.Equal(t, 0, draft.MemberLimit)
	assert.Equal(t, "math", draft.CourseID)
	assert.Equal(t, "Математика", draft.CourseName)
}

func TestReadCreateDraft_PrivateWithPasskey(t *testing.T) {
	sm := state.NewAdapter(state.NewManager())
	const telegramID int64 = 2

	sm.SetState(telegramID, stateCreateGroupName)
	sm.SetData(telegramID, CreateNameKey, "Физика")
	sm.SetData(telegramID, CreateDescriptionKey, "Лабораторные по пятницам")
	sm.SetState(telegramID, stateCreateGroupButtons)
	sm.SetData(telegramID, CreatePrivacyKey, model.PrivacyPrivate)

	sm.SetState(telegramID, stateCreateGroupPasskey)
	sm.SetData(telegramID, CreatePasskeyKey, "secret42")

	sm.SetState(telegramID, stateCreateGroupLimit)
	sm.SetData(telegramID, CreateLimitKey, 25)
	sm.SetState(telegramID, stateCreateGroupButtons)

	draft := ReadCreateDraft(sm, telegramID)
	assert.Equal(t, model.PrivacyPrivate, draft.Privacy)
	assert.True(t, draft.HasPasskey)
	assert.Equal(t, "secret42", draft.Passkey)
	assert.Equal(t, 25, draft.MemberLimit)
}
