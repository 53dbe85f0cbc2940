package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"loancalc/internal/domain/session"
)

type SessionRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		pool: pool,
		log:  log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at) VALUES ($1, $2, $3)`,
		userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindActive(ctx context.Context, tokenHash string) (session.Session, error) {
	const query = `
		SELECT s.id, s.user_id, u.login, s.token_hash, s.is_active, s.created_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = $1 AND s.is_active AND s.expires_at > NOW()`

	var sess session.Session
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&sess.ID, &sess.UserID, &sess.Login, &sess.TokenHash,
		&sess.IsActive, &sess.CreatedAt, &sess.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("find session: %w", err)
	}

	return sess, nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sessions SET is_active = FALSE WHERE token_hash = $1`, tokenHash)
	if err != nil {
		r.log.Error("failed to deactivate session", "error", err)
		return fmt.Errorf("deactivate session: %w", err)
	}
	return nil
}
