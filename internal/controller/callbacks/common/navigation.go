package common

import (
	"context"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Common Navigation Handlers
// ========================
// These handlers manage common navigation actions used throughout the bot

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}
	telegramID := callback.From.ID

	// Очищаем состояние пользователя
	h.StateManager.ClearState(telegramID)

	// Сессия может отсутствовать: меню об этом сообщит само
	session, _ := h.SessionService.Current(ctx, telegramID)

	text, kb := BuildMainMenuScreen(session)

	hc := NewHandlerContext(ctx, b, callback, h)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.SendMessage(text, kb)
	}

	AnswerCallback(ctx, b, callback.ID, "")
}
