package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", "back_to_main")
}

// BackToMyGroupsButton создаёт кнопку "К моим группам"
func BackToMyGroupsButton() models.InlineKeyboardButton {
	return Button("⬅️ К моим группам", "my_groups")
}

// BackToDiscoverButton создаёт кнопку "К поиску групп"
func BackToDiscoverButton() models.InlineKeyboardButton {
	return Button("⬅️ К поиску групп", "discover")
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// BackRow создаёт ряд с кнопкой "Назад"
func BackRow(callbackData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{BackButton(callbackData)}
}

// AddBackButton добавляет кнопку "Назад" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddBackToMainButton добавляет кнопку "В главное меню" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// AddBackToMyGroupsButton добавляет кнопку "К моим группам" к builder
func (b *Builder) AddBackToMyGroupsButton() *Builder {
	return b.Row(BackToMyGroupsButton())
}

// ViewGroupButton создаёт кнопку открытия карточки группы
func ViewGroupButton(text string, groupID int64) models.InlineKeyboardButton {
	return Button(text, fmt.Sprintf("view_group:%d", groupID))
}

// ManageGroupButton создаёт кнопку "Управление группой"
func ManageGroupButton(groupID int64) models.InlineKeyboardButton {
	return Button("⚙️ Управление группой", fmt.Sprintf("manage_group:%d", groupID))
}

// EditButton создаёт кнопку "Редактировать"
func EditButton(callbackData string) models.InlineKeyboardButton {
	return Button("✏️ Редактировать", callbackData)
}

// DeleteButton создаёт кнопку "Удалить"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Удалить", callbackData)
}
