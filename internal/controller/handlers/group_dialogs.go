package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/member"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// validateGroupName проверяет длину названия группы
func (h *Handlers) validateGroupName(ctx context.Context, b *bot.Bot, chatID int64, name string) bool {
	if len([]rune(name)) < GroupNameMinLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Название слишком короткое. Минимум %d символа.\n\nПопробуйте ещё раз:", GroupNameMinLength))
		return false
	}
	if len([]rune(name)) > GroupNameMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Название слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", GroupNameMaxLength))
		return false
	}
	return true
}

// validateGroupDescription проверяет длину описания группы
func (h *Handlers) validateGroupDescription(ctx context.Context, b *bot.Bot, chatID int64, description string) bool {
	if len([]rune(description)) < GroupDescriptionMinLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Описание слишком короткое. Минимум %d символов.\n\nПопробуйте ещё раз:", GroupDescriptionMinLength))
		return false
	}
	if len([]rune(description)) > GroupDescriptionMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Описание слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", GroupDescriptionMaxLength))
		return false
	}
	return true
}

// ========================
// Edit Group Dialog
// ========================

// handleEditGroupNameStep обрабатывает ввод нового названия группы
func (h *Handlers) handleEditGroupNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	if !h.validateGroupName(ctx, b, chatID, name) {
		return
	}

	h.stateManager.SetData(telegramID, "edit_name", name)
	h.stateManager.SetState(telegramID, state.StateEditGroupDescription)

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("✅ Новое название: %s\n\nТеперь введите новое описание группы:", name))
}

// handleEditGroupDescriptionStep сохраняет изменения группы на портале
func (h *Handlers) handleEditGroupDescriptionStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	description := strings.TrimSpace(update.Message.Text)

	if !h.validateGroupDescription(ctx, b, chatID, description) {
		return
	}

	groupIDData, ok1 := h.stateManager.GetData(telegramID, admin.EditGroupIDKey)
	nameData, ok2 := h.stateManager.GetData(telegramID, "edit_name")
	if !ok1 || !ok2 {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Данные диалога потеряны. Откройте группу заново через /mygroups")
		return
	}
	groupID, _ := groupIDData.(int64)
	name, _ := nameData.(string)

	session, err := h.sessionService.Require(ctx, telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.handleAPIError(ctx, b, chatID, telegramID, err, "edit_group")
		return
	}

	if err := h.consoleService.UpdateDetails(ctx, session.Token, groupID, name, description); err != nil {
		h.handleAPIError(ctx, b, chatID, telegramID, err, "edit_group")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, chatID, "✅ Группа обновлена!")

	// Показываем консоль с уже обновлёнными данными
	view, err := h.consoleService.LoadGroup(ctx, session.Token, groupID, session.UserID)
	if err != nil {
		h.logger.Warn("Failed to reload group after edit",
			zap.Int64("group_id", groupID),
			zap.Error(err))
		return
	}
	text, kb := common.BuildManageGroupScreen(view)
	h.sendScreen(ctx, b, chatID, text, kb)
}

// ========================
// Create Group Dialog
// ========================

// handleCreateGroupNameStep обрабатывает ввод названия новой группы
func (h *Handlers) handleCreateGroupNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	if !h.validateGroupName(ctx, b, chatID, name) {
		return
	}

	h.stateManager.SetData(telegramID, member.CreateNameKey, name)
	h.stateManager.SetState(telegramID, state.StateCreateGroupDescription)

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("✅ Название: %s\n\n"+
			"Шаг 2 из 6: Напишите описание группы\n\n"+
			"Например: Готовимся к экзамену по матанализу, встречаемся по вторникам\n\n"+
			"Для отмены используйте /cancel", name))
}

// handleCreateGroupDescriptionStep обрабатывает ввод описания
func (h *Handlers) handleCreateGroupDescriptionStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	description := strings.TrimSpace(update.Message.Text)

	if !h.validateGroupDescription(ctx, b, chatID, description) {
		return
	}

	h.stateManager.SetData(telegramID, member.CreateDescriptionKey, description)
	// Дальше мастер идёт по кнопкам, текстовый ввод вернётся на шаге пароля
	h.stateManager.SetState(telegramID, state.StateCreateGroupButtons)

	text, kb := member.BuildCreatePrivacyScreen()
	h.sendScreen(ctx, b, chatID, text, kb)
}

// handleCreateGroupPasskeyStep обрабатывает ввод пароля группы
func (h *Handlers) handleCreateGroupPasskeyStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	passkey := strings.TrimSpace(update.Message.Text)

	// Пароль не должен оставаться в истории чата
	h.deleteMessage(ctx, b, chatID, update.Message.ID)

	if passkey == "" {
		h.sendError(ctx, b, chatID, "⚠️ Пароль не может быть пустым. Введите пароль или нажмите кнопку выше:")
		return
	}

	h.stateManager.SetData(telegramID, member.CreatePasskeyKey, passkey)
	h.stateManager.SetState(telegramID, state.StateCreateGroupLimit)

	text, kb := member.BuildCreateLimitScreen()
	h.sendScreen(ctx, b, chatID, text, kb)
}

// handleCreateGroupLimitStep обрабатывает ввод лимита участников
func (h *Handlers) handleCreateGroupLimitStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	limit, err := strconv.Atoi(strings.TrimSpace(update.Message.Text))
	if err != nil || limit < 1 || limit > GroupMemberLimitMax {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Введите целое число от 1 до %d или нажмите кнопку выше:", GroupMemberLimitMax))
		return
	}

	h.stateManager.SetData(telegramID, member.CreateLimitKey, limit)
	h.stateManager.SetState(telegramID, state.StateCreateGroupButtons)

	session, err := h.sessionService.Require(ctx, telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.handleAPIError(ctx, b, chatID, telegramID, err, "create_group_limit")
		return
	}

	snapshot, err := h.directoryService.Fetch(ctx, session.Token)
	if err != nil {
		h.handleAPIError(ctx, b, chatID, telegramID, err, "create_group_limit")
		return
	}

	text, kb := member.BuildCreateCourseScreen(snapshot.Courses)
	h.sendScreen(ctx, b, chatID, text, kb)
}
