package calculation

import (
	"context"
	"time"
)

type Repository interface {
	// Create заполняет ID и CreatedAt. ErrOwnerNotFound - нет пользователя, ErrLinkTaken - коллизия ссылки.
	Create(ctx context.Context, calc *Calculation) (int, error)
	// ListByUser возвращает расчеты в порядке создания
	ListByUser(ctx context.Context, userID int) ([]Calculation, error)
	FindByLink(ctx context.Context, link string) (Calculation, error)
}

// Cache хранит расчеты по ссылке. Записи неизменяемы, поэтому инвалидация не нужна.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Archive - объектное хранилище для выгрузок графика
type Archive interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}
