package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	session, err := h.sessionService.Current(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get session on start",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот студенческого портала: здесь можно искать учебные группы, "+
			"вступать в них и управлять своими группами.\n\n"+
			"Доступные команды:\n"+
			"/login - Войти в портал\n"+
			"/mygroups - Мои группы\n"+
			"/discover - Найти группу\n"+
			"/creategroup - Создать группу\n"+
			"/help - Справка",
		update.Message.From.FirstName,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)

	if session != nil {
		text, kb := common.BuildMainMenuScreen(session)
		h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
	}
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/login - Войти в студенческий портал\n" +
		"/logout - Выйти из портала\n" +
		"/mygroups - Список ваших групп\n" +
		"/discover - Каталог групп с фильтрами\n" +
		"/creategroup - Создать новую группу\n" +
		"/cancel - Отменить текущий диалог\n" +
		"/help - Показать эту справку\n\n" +
		"Вступление в группу зависит от её типа: в открытую можно войти сразу, " +
		"в приватную - по паролю или по заявке, которую рассматривают админы."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	session, err := h.sessionService.Current(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get session", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
	if session != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("✅ Вы уже вошли как %s.\n\nЧтобы сменить аккаунт, сначала выполните /logout.", session.Name))
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 Вход в студенческий портал\n\n"+
			"Шаг 1 из 2: Введите ваш email\n\n"+
			"Для отмены используйте /cancel")
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)

	loggedOut, err := h.sessionService.Logout(ctx, telegramID)
	if err != nil {
		h.logger.Error("Logout failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось выйти. Попробуйте позже.")
		return
	}

	if !loggedOut {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Вы и не были в системе. Используйте /login для входа.")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Вы вышли из портала. Возвращайтесь: /login")
}

// HandleMyGroups обрабатывает команду /mygroups
func (h *Handlers) HandleMyGroups(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	snapshot, err := h.directoryService.Fetch(ctx, session.Token)
	if err != nil {
		h.handleAPIError(ctx, b, chatID, telegramID, err, "my_groups_command")
		return
	}

	text, kb := common.BuildMyGroupsScreen(snapshot.OwnedGroups(), snapshot.JoinedGroups())
	h.sendScreen(ctx, b, chatID, text, kb)
}

// HandleDiscover обрабатывает команду /discover
func (h *Handlers) HandleDiscover(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	snapshot, err := h.directoryService.Fetch(ctx, session.Token)
	if err != nil {
		h.handleAPIError(ctx, b, chatID, telegramID, err, "discover_command")
		return
	}

	filter := h.filters.Get(telegramID)
	groups := snapshot.Discover(filter)

	courseName := ""
	if course := snapshot.FindCourse(filter.CourseID); course != nil {
		courseName = course.CourseName
	}

	text, kb := common.BuildDiscoverScreen(groups, filter, courseName, 0)
	h.sendScreen(ctx, b, chatID, text, kb)
}

// HandleCreateGroup обрабатывает команду /creategroup
func (h *Handlers) HandleCreateGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateCreateGroupName)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"➕ Создание группы\n\n"+
			"Шаг 1 из 6: Введите название группы\n\n"+
			"Для отмены используйте /cancel")
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Info("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	// Если нет активного состояния, игнорируем
	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
		return
	}

	// Обрабатываем в зависимости от состояния
	switch currentState {
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)
	case state.StateAwaitingPasskey:
		h.handlePasskeyStep(ctx, b, update)
	case state.StateSearchTerm:
		h.handleSearchTermStep(ctx, b, update)
	case state.StateEditGroupName:
		h.handleEditGroupNameStep(ctx, b, update)
	case state.StateEditGroupDescription:
		h.handleEditGroupDescriptionStep(ctx, b, update)
	case state.StateCreateGroupName:
		h.handleCreateGroupNameStep(ctx, b, update)
	case state.StateCreateGroupDescription:
		h.handleCreateGroupDescriptionStep(ctx, b, update)
	case state.StateCreateGroupPasskey:
		h.handleCreateGroupPasskeyStep(ctx, b, update)
	case state.StateCreateGroupLimit:
		h.handleCreateGroupLimitStep(ctx, b, update)
	case state.StateCreateGroupButtons:
		// Мастер ждёт нажатия кнопки, текст игнорируем
		h.logger.Debug("Awaiting button press, ignoring message",
			zap.Int64("telegram_id", telegramID))
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
