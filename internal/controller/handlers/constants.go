package handlers

// Константы валидации для создания и редактирования групп
const (
	// Название группы
	GroupNameMinLength = 3
	GroupNameMaxLength = 100

	// Описание группы
	GroupDescriptionMinLength = 5
	GroupDescriptionMaxLength = 500

	// Лимит участников
	GroupMemberLimitMax = 10_000
)
