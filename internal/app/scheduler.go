package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sessionService *service.SessionService
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(sessionService *service.SessionService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sessionService: sessionService,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runSessionCleanupTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runSessionCleanupTask периодически удаляет истёкшие сессии
func (s *Scheduler) runSessionCleanupTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.cleanupSessions(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupSessions(ctx)
		case <-s.stopChan:
			s.logger.Info("Session cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session cleanup task cancelled")
			return
		}
	}
}

// cleanupSessions удаляет истёкшие сессии из БД
func (s *Scheduler) cleanupSessions(ctx context.Context) {
	s.logger.Info("Starting expired session cleanup")

	removed, err := s.sessionService.CleanupExpired(ctx)
	if err != nil {
		s.logger.Error("Failed to cleanup sessions", zap.Error(err))
		return
	}

	s.logger.Info("Expired session cleanup completed",
		zap.Int64("removed", removed))
}
