package model

import "time"

// Session привязка Telegram-пользователя к учётной записи портала.
// Токен хранится в БД, чтобы сессия переживала перезапуск бота.
type Session struct {
	TelegramID int64     `json:"telegram_id"`
	Token      string    `json:"-"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsExpired проверяет, истекла ли сессия
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
