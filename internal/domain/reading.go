package domain

import (
	"time"

	"github.com/google/uuid"
)

// FallbackImageURL подставляется вместо картинки, если генерация не удалась
const FallbackImageURL = "https://picsum.photos/300/400?grayscale&blur=2"

// Reading расклад дня для одного пользователя.
// Запись неизменяемая: создаётся один раз на (user_id, date) и никогда не обновляется.
type Reading struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Date      string    `json:"date" db:"date"` // YYYY-MM-DD, часть ключа кэша
	CardName  string    `json:"cardName" db:"card_name"`
	CardImage string    `json:"cardImageBase64" db:"card_image"` // data URI или URL заглушки
	Horoscope string    `json:"horoscope" db:"horoscope"`
	Finance   string    `json:"finance" db:"finance"`
	Relations string    `json:"relations" db:"relations"`
	Advice    string    `json:"advice" db:"advice"`
	Timestamp int64     `json:"timestamp" db:"ts"` // epoch millis, порядок в истории
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewReading собирает новый расклад из предсказания и картинки
func NewReading(userID uuid.UUID, date string, p *Prediction, cardImage string, now time.Time) *Reading {
	return &Reading{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		CardName:  p.CardName,
		CardImage: cardImage,
		Horoscope: p.Horoscope,
		Finance:   p.Finance,
		Relations: p.Relations,
		Advice:    p.Advice,
		Timestamp: now.UnixMilli(),
		CreatedAt: now,
	}
}
