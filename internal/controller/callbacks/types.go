package callbacks

import (
	"context"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	sessionService *service.SessionService,
	directoryService *service.DirectoryService,
	joinService *service.JoinService,
	consoleService *service.ConsoleService,
	stateManager callbacktypes.StateManager,
	filters callbacktypes.FilterStore,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		SessionService:   sessionService,
		DirectoryService: directoryService,
		JoinService:      joinService,
		ConsoleService:   consoleService,
		StateManager:     stateManager,
		Filters:          filters,
		Logger:           logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	// Вызываем роутер
	Route(ctx, b, callback, h.Handler)
}
