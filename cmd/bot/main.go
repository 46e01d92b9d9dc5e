package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/studygroup_bot/internal/app"
	"github.com/Freeeeeet/studygroup_bot/internal/config"
	"github.com/Freeeeeet/studygroup_bot/internal/controller"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/Freeeeeet/studygroup_bot/internal/repository"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("🚀 Starting studygroup bot", zap.String("env", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Подключаемся к базе данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("✅ Connected to database")

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Error("Failed to close migrator", zap.Error(err))
	}
	logger.Info("✅ Migrations applied")

	// Клиент API портала
	portalClient := portal.NewClient(cfg.PortalAPIURL, logger)

	// Репозитории и сервисы
	sessionRepo := repository.NewSessionRepository(pool)
	sessionService := service.NewSessionService(sessionRepo, portalClient, logger)
	directoryService := service.NewDirectoryService(portalClient, logger)
	joinService := service.NewJoinService(portalClient, directoryService, logger)
	consoleService := service.NewConsoleService(portalClient, logger)

	// Создаём бота
	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		sessionService,
		directoryService,
		joinService,
		consoleService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Фоновая очистка протухших сессий
	scheduler := app.NewScheduler(sessionService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logger.Info("✅ Bot is running")

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down gracefully")
}
