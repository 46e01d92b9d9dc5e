package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Upsert сохраняет сессию, перезаписывая предыдущую для этого Telegram ID
func (r *SessionRepository) Upsert(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (telegram_id, token, user_id, name, email, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO UPDATE
		SET token = EXCLUDED.token,
		    user_id = EXCLUDED.user_id,
		    name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    expires_at = EXCLUDED.expires_at,
		    created_at = now()
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		session.TelegramID,
		session.Token,
		session.UserID,
		session.Name,
		session.Email,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// GetByTelegramID получает сессию по Telegram ID
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `
		SELECT telegram_id, token, user_id, name, email, created_at, expires_at
		FROM sessions
		WHERE telegram_id = $1
	`

	var session model.Session
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&session.TelegramID,
		&session.Token,
		&session.UserID,
		&session.Name,
		&session.Email,
		&session.CreatedAt,
		&session.ExpiresAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &session, nil
}

// Delete удаляет сессию. Возвращает false, если сессии не было.
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) (bool, error) {
	query := `
		DELETE FROM sessions
		WHERE telegram_id = $1
	`

	result, err := r.pool.Exec(ctx, query, telegramID)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteExpired удаляет истёкшие сессии, возвращает количество удалённых
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at < now()
	`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
