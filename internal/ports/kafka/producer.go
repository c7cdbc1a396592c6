package kafka

import (
	"context"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// IEventProducer интерфейс для публикации событий о раскладах.
// Публикация best-effort: отказ брокера не влияет на ответ пользователю.
type IEventProducer interface {
	// PublishReadingCreated отправляет событие о созданном раскладе
	PublishReadingCreated(ctx context.Context, tgID string, reading *domain.Reading) error
	// Close закрывает producer
	Close() error
}
