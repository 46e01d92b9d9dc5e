package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/member"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/state"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Login Dialog
// ========================

// handleLoginEmailStep обрабатывает ввод email
func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if !strings.Contains(email, "@") || len(email) < 5 {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Это не похоже на email. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(telegramID, "login_email", email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Email: %s\n\n"+
			"Шаг 2 из 2: Введите пароль\n\n"+
			"⚠️ Сообщение с паролем будет удалено сразу после обработки.\n"+
			"Для отмены используйте /cancel", email))
}

// handleLoginPasswordStep обрабатывает ввод пароля и выполняет вход
func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// Пароль не должен оставаться в истории чата
	h.deleteMessage(ctx, b, chatID, update.Message.ID)

	emailData, ok := h.stateManager.GetData(telegramID, "login_email")
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Email не найден. Начните заново: /login")
		return
	}
	email, _ := emailData.(string)

	session, err := h.sessionService.Login(ctx, telegramID, email, password)
	if err != nil {
		h.logger.Warn("Login failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))

		var requestErr *portal.RequestError
		if errors.As(err, &requestErr) {
			// Неверные учётные данные: возвращаемся к вводу email
			h.stateManager.SetState(telegramID, state.StateLoginEmail)
			h.sendError(ctx, b, chatID,
				"❌ Войти не удалось: неверный email или пароль.\n\nВведите email ещё раз:")
			return
		}

		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Добро пожаловать, %s!", session.Name))

	text, kb := common.BuildMainMenuScreen(session)
	h.sendScreen(ctx, b, chatID, text, kb)
}

// ========================
// Group Passkey Dialog
// ========================

// handlePasskeyStep обрабатывает ввод пароля группы при вступлении
func (h *Handlers) handlePasskeyStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	passkey := strings.TrimSpace(update.Message.Text)

	// Пароль группы тоже не оставляем в истории чата
	h.deleteMessage(ctx, b, chatID, update.Message.ID)

	if passkey == "" {
		h.sendError(ctx, b, chatID, "⚠️ Пароль группы не может быть пустым. Попробуйте ещё раз:")
		return
	}

	groupIDData, ok := h.stateManager.GetData(telegramID, member.JoinGroupIDKey)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Группа не найдена. Начните заново: /discover")
		return
	}
	groupID, _ := groupIDData.(int64)

	session, err := h.sessionService.Require(ctx, telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.handleAPIError(ctx, b, chatID, telegramID, err, "passkey_join")
		return
	}

	snapshot, err := h.directoryService.Fetch(ctx, session.Token)
	if err != nil {
		h.handleAPIError(ctx, b, chatID, telegramID, err, "passkey_join")
		return
	}

	group := snapshot.FindGroup(groupID)
	if group == nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Группа не найдена. Возможно, её удалили.")
		return
	}

	outcome, err := h.joinService.Submit(ctx, session.Token, group, &passkey)
	if err != nil {
		var requestErr *portal.RequestError
		if errors.As(err, &requestErr) {
			// Неверный пароль: состояние сохраняется, можно попробовать снова
			h.sendError(ctx, b, chatID,
				common.ErrorMessage(err)+"\n\nПопробуйте ещё раз или используйте /cancel")
			return
		}
		h.handleAPIError(ctx, b, chatID, telegramID, err, "passkey_join")
		return
	}

	h.stateManager.ClearState(telegramID)

	message := outcome.Message
	if message == "" {
		message = "✅ Вы вступили в группу!"
	}
	h.sendMessage(ctx, b, chatID, message)

	if outcome.Snapshot != nil {
		if joined := outcome.Snapshot.FindGroup(groupID); joined != nil {
			text, kb := common.BuildGroupDetailsScreen(joined, outcome.Snapshot.IsMember(groupID), "my_groups")
			h.sendScreen(ctx, b, chatID, text, kb)
		}
	}
}

// ========================
// Catalog Search Dialog
// ========================

// handleSearchTermStep обрабатывает ввод поисковой строки каталога
func (h *Handlers) handleSearchTermStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	filter := h.filters.Get(telegramID)
	filter.Search = strings.TrimSpace(update.Message.Text)
	h.filters.Set(telegramID, filter)

	h.stateManager.ClearState(telegramID)

	// Показываем каталог уже с применённым поиском
	h.HandleDiscover(ctx, b, update)
}
