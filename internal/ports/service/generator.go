package service

import (
	"context"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// IImageGenerator генерация иллюстрации карты.
// Возвращает base64-кодированный JPEG без префикса data URI.
type IImageGenerator interface {
	GenerateCardImage(ctx context.Context, card domain.Card) (string, error)
}

// ITextGenerator генерация текстового предсказания.
// Ошибка парсинга или неполный JSON от модели возвращаются как error —
// подстановкой заглушки занимается usecase, не адаптер.
type ITextGenerator interface {
	GeneratePrediction(ctx context.Context, card domain.Card, userName string) (*domain.Prediction, error)
}
