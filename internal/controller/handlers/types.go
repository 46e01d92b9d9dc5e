package handlers

import (
	"github.com/Freeeeeet/studygroup_bot/internal/controller/state"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	sessionService   *service.SessionService
	directoryService *service.DirectoryService
	joinService      *service.JoinService
	consoleService   *service.ConsoleService
	stateManager     *state.Manager
	filters          *state.FilterStore
	logger           *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	sessionService *service.SessionService,
	directoryService *service.DirectoryService,
	joinService *service.JoinService,
	consoleService *service.ConsoleService,
	stateManager *state.Manager,
	filters *state.FilterStore,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessionService:   sessionService,
		directoryService: directoryService,
		joinService:      joinService,
		consoleService:   consoleService,
		stateManager:     stateManager,
		filters:          filters,
		logger:           logger,
	}
}
