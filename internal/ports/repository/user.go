package repository

import (
	"context"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// IUserRepo интерфейс для работы с пользователями Telegram
type IUserRepo interface {
	// Upsert создаёт пользователя или обновляет имя существующего.
	// После вызова user.ID содержит актуальный идентификатор из базы.
	Upsert(ctx context.Context, user *domain.User) error
	GetByTgID(ctx context.Context, tgID string) (*domain.User, error)
}
