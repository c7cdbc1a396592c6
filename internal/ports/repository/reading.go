package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// IReadingRepo интерфейс для работы с раскладами
type IReadingRepo interface {
	// Create вставляет новый расклад. При нарушении уникальности (user_id, date)
	// возвращает domain.ErrReadingExists — вызывающий перечитывает строку победителя.
	Create(ctx context.Context, reading *domain.Reading) error

	// GetByUserAndDate возвращает расклад на дату или domain.ErrNotFound
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*domain.Reading, error)

	// ListByUser возвращает историю раскладов, новые первыми
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Reading, error)
}
