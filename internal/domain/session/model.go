package session

import "time"

// Session - выданный клиенту токен. Сам токен не хранится, только его SHA-256.
type Session struct {
	ID        int
	UserID    int
	Login     string
	TokenHash string
	IsActive  bool
	CreatedAt time.Time
	ExpiresAt time.Time
}
