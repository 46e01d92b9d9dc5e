package callbacktypes

import (
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
}

// FilterStore хранит выбранный фильтр каталога для каждого пользователя.
// Живёт отдельно от диалоговых состояний: отмена диалога не сбрасывает фильтры.
type FilterStore interface {
	Get(telegramID int64) service.DiscoverFilter
	Set(telegramID int64, f service.DiscoverFilter)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	SessionService   *service.SessionService
	DirectoryService *service.DirectoryService
	JoinService      *service.JoinService
	ConsoleService   *service.ConsoleService
	StateManager     StateManager
	Filters          FilterStore
	Logger           *zap.Logger
}
