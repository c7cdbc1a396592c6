package usecase

import (
	"context"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// IOracleService контракт сервиса ежедневных раскладов для HTTP-слоя
type IOracleService interface {
	// GetOrCreateReading возвращает расклад пользователя на сегодня,
	// создавая его при первом обращении за день
	GetOrCreateReading(ctx context.Context, tgID, name string) (*domain.Reading, error)
	// History возвращает историю раскладов пользователя, новые первыми
	History(ctx context.Context, tgID string, limit int) ([]domain.Reading, error)
}
