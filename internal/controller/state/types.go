package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния для входа на портал
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Состояния для вступления в группу
	StateAwaitingPasskey UserState = "awaiting_passkey"

	// Состояния для каталога групп
	StateSearchTerm UserState = "search_term"

	// Состояния для редактирования группы
	StateEditGroupName        UserState = "edit_group_name"
	StateEditGroupDescription UserState = "edit_group_description"

	// Состояния для создания группы
	StateCreateGroupName        UserState = "create_group_name"
	StateCreateGroupDescription UserState = "create_group_description"
	StateCreateGroupPasskey     UserState = "create_group_passkey"
	StateCreateGroupLimit       UserState = "create_group_limit"

	// Мастер ждёт нажатия inline-кнопки: текстовый ввод не нужен,
	// но накопленные данные диалога должны сохраниться до подтверждения
	StateCreateGroupButtons UserState = "create_group_buttons"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
