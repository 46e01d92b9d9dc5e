package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"go.uber.org/zap"
)

// sessionTTL сколько живёт сохранённый токен. Портал может отозвать токен
// раньше, тогда первый же 401 снесёт сессию.
const sessionTTL = 12 * time.Hour

// SessionStore - хранилище сессий. Реализуется repository.SessionRepository.
type SessionStore interface {
	Upsert(ctx context.Context, session *model.Session) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error)
	Delete(ctx context.Context, telegramID int64) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type SessionService struct {
	sessionRepo SessionStore
	portal      *portal.Client
	logger      *zap.Logger
}

func NewSessionService(sessionRepo SessionStore, portalClient *portal.Client, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		portal:      portalClient,
		logger:      logger,
	}
}

// Login выполняет вход на портал и сохраняет сессию для Telegram-пользователя
func (s *SessionService) Login(ctx context.Context, telegramID int64, email, password string) (*model.Session, error) {
	result, err := s.portal.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		TelegramID: telegramID,
		Token:      result.Token,
		UserID:     result.User.UserID,
		Name:       result.User.Name,
		Email:      result.User.Email,
		ExpiresAt:  time.Now().Add(sessionTTL),
	}

	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("user_id", session.UserID),
	)

	return session, nil
}

// Logout завершает сессию. Возвращает false, если сессии и не было.
func (s *SessionService) Logout(ctx context.Context, telegramID int64) (bool, error) {
	existed, err := s.sessionRepo.Delete(ctx, telegramID)
	if err != nil {
		return false, err
	}

	if existed {
		s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	}

	return existed, nil
}

// Current возвращает действующую сессию или nil.
// Истёкшая сессия удаляется сразу же.
func (s *SessionService) Current(ctx context.Context, telegramID int64) (*model.Session, error) {
	session, err := s.sessionRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if session.IsExpired() {
		if _, err := s.sessionRepo.Delete(ctx, telegramID); err != nil {
			s.logger.Warn("Failed to delete expired session",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
		}
		return nil, nil
	}

	return session, nil
}

// Require возвращает действующую сессию либо portal.ErrAuth.
// Единственная точка, через которую обработчики получают credential.
func (s *SessionService) Require(ctx context.Context, telegramID int64) (*model.Session, error) {
	session, err := s.Current(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, portal.ErrAuth
	}
	return session, nil
}

// Drop сбрасывает сессию после 401 от портала
func (s *SessionService) Drop(ctx context.Context, telegramID int64) {
	if _, err := s.sessionRepo.Delete(ctx, telegramID); err != nil {
		s.logger.Warn("Failed to drop session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		return
	}

	s.logger.Info("Session dropped after auth failure",
		zap.Int64("telegram_id", telegramID))
}

// CleanupExpired удаляет все истёкшие сессии (фоновая задача)
func (s *SessionService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
