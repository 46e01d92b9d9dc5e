package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithSession создаёт HandlerContext и загружает сессию портала
// При ошибке автоматически отвечает пользователю и возвращает nil
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		h.Logger.Warn("Session check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю.
// Если портал ответил 401, локальная сессия сбрасывается: токен больше не действует.
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))

	if errors.Is(err, portal.ErrAuth) {
		hc.Handler.SessionService.Drop(hc.Ctx, hc.TelegramID)
		hc.Session = nil
		hc.ClearState()
	}

	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	fields := []zap.Field{zap.Int64("telegram_id", hc.TelegramID)}
	if hc.Session != nil {
		fields = append(fields, zap.Int64("user_id", hc.Session.UserID))
	}
	hc.Handler.Logger.Info(message, fields...)
	hc.Answer(answer)
}
