package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"loancalc/internal/domain/session"
)

type SessionRepository struct {
	db  *sql.DB
	now func() time.Time
	log *slog.Logger
}

func NewSessionRepository(db *sql.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		now: time.Now,
		log: log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at) VALUES (?, ?, ?)`,
		userID, tokenHash, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindActive сравнивает срок жизни в Go: SQLite хранит время строкой.
func (r *SessionRepository) FindActive(ctx context.Context, tokenHash string) (session.Session, error) {
	const query = `
		SELECT s.id, s.user_id, u.login, s.token_hash, s.is_active, s.created_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = ? AND s.is_active = 1`

	var sess session.Session
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&sess.ID, &sess.UserID, &sess.Login, &sess.TokenHash,
		&sess.IsActive, &sess.CreatedAt, &sess.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("find session: %w", err)
	}

	if !sess.ExpiresAt.After(r.now()) {
		return session.Session{}, session.ErrNotFound
	}

	return sess, nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET is_active = 0 WHERE token_hash = ?`, tokenHash)
	if err != nil {
		r.log.Error("failed to deactivate session", "error", err)
		return fmt.Errorf("deactivate session: %w", err)
	}
	return nil
}
