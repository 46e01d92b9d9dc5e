package controller

import (
	"context"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/handlers"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/state"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	sessionService *service.SessionService,
	directoryService *service.DirectoryService,
	joinService *service.JoinService,
	consoleService *service.ConsoleService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний и хранилище фильтров каталога
	stateManager := state.NewManager()
	filters := state.NewFilterStore()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		sessionService,
		directoryService,
		joinService,
		consoleService,
		stateManager,
		filters,
		logger,
	)

	// Создаём адаптер для callback handlers
	stateAdapter := state.NewAdapter(stateManager)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		sessionService,
		directoryService,
		joinService,
		consoleService,
		stateAdapter,
		filters,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mygroups", bot.MatchTypeExact, c.handlers.HandleMyGroups)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/discover", bot.MatchTypeExact, c.handlers.HandleDiscover)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/creategroup", bot.MatchTypeExact, c.handlers.HandleCreateGroup)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "login", Description: "🔐 Войти в портал"},
		{Command: "mygroups", Description: "👥 Мои группы"},
		{Command: "discover", Description: "🔍 Найти группу"},
		{Command: "creategroup", Description: "➕ Создать группу"},
		{Command: "logout", Description: "🚪 Выйти из портала"},
		{Command: "cancel", Description: "❌ Отменить диалог"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
