package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession проверяет что пользователь вошёл в портал.
// Возвращает session и true если OK, nil и false если нет.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	session, err := h.sessionService.Current(ctx, telegramID)

	if err != nil {
		h.logger.Error("Failed to get session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}

	if session == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "🔒 Вы не вошли в портал.\n\nИспользуйте /login для входа.")
		return nil, false
	}

	return session, true
}

// handleAPIError отправляет пользователю сообщение об ошибке портала.
// Если портал ответил 401, локальная сессия сбрасывается.
func (h *Handlers) handleAPIError(ctx context.Context, b *bot.Bot, chatID, telegramID int64, err error, operation string) {
	h.logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", telegramID),
		zap.Error(err))

	if errors.Is(err, portal.ErrAuth) {
		h.sessionService.Drop(ctx, telegramID)
		h.stateManager.ClearState(telegramID)
	}

	h.sendError(ctx, b, chatID, common.ErrorMessage(err))
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendScreen отправляет HTML-сообщение с inline клавиатурой
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("Failed to send screen",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// deleteMessage удаляет сообщение (используется для сообщений с паролями)
func (h *Handlers) deleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		h.logger.Warn("Failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}
