package formatting

import "github.com/Freeeeeet/studygroup_bot/internal/model"

// PrivacyDisplay представляет отображение приватности группы
type PrivacyDisplay struct {
	Emoji string
	Text  string
}

// GetPrivacyDisplay возвращает emoji и текст для приватности группы
func GetPrivacyDisplay(privacy string) PrivacyDisplay {
	displays := map[string]PrivacyDisplay{
		model.PrivacyPublic:  {"🌐", "Открытая"},
		model.PrivacyPrivate: {"🔒", "Приватная"},
	}

	if display, ok := displays[privacy]; ok {
		return display
	}

	return PrivacyDisplay{"❓", "Неизвестно"}
}

// RoleDisplay представляет отображение роли участника
type RoleDisplay struct {
	Emoji string
	Text  string
}

// GetRoleDisplay возвращает emoji и текст для роли участника
func GetRoleDisplay(role string) RoleDisplay {
	displays := map[string]RoleDisplay{
		model.RoleOwner:  {"👑", "Владелец"},
		model.RoleAdmin:  {"🛡", "Админ"},
		model.RoleMember: {"👤", "Участник"},
	}

	if display, ok := displays[role]; ok {
		return display
	}

	return RoleDisplay{"👤", "Участник"}
}

// RequestStatusDisplay представляет отображение статуса заявки
type RequestStatusDisplay struct {
	Emoji string
	Text  string
}

// GetRequestStatusDisplay возвращает emoji и текст для статуса заявки
func GetRequestStatusDisplay(status string) RequestStatusDisplay {
	displays := map[string]RequestStatusDisplay{
		model.RequestStatusPending:  {"⏳", "Ожидает решения"},
		model.RequestStatusApproved: {"✅", "Одобрена"},
		model.RequestStatusDenied:   {"🚫", "Отклонена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return RequestStatusDisplay{"❓", "Неизвестно"}
}
