package cache

import (
	"context"
	"time"
)

// Cache интерфейс для работы с кэшем раскладов.
// Кэш — сквозная оптимизация чтения, источник истины всегда Postgres.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
