package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	// FindActive возвращает ErrNotFound для неизвестной, деактивированной или истекшей сессии
	FindActive(ctx context.Context, tokenHash string) (Session, error)
	// Deactivate ничего не делает, если сессии нет
	Deactivate(ctx context.Context, tokenHash string) error
}
