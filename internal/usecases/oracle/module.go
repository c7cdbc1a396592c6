package oracle

import (
	"log/slog"
	"math/rand/v2"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/cache"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/clock"
	kafkaPorts "github.com/ryabchinskiymike/taro-bot/internal/ports/kafka"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/repository"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/service"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/storage"
)

// Service бизнес-логика ежедневных раскладов.
// Это единственная авторитетная реализация генерации расклада:
// HTTP-слой и клиент мини-аппа — только потребители её контракта.
type Service struct {
	UserRepo    repository.IUserRepo
	ReadingRepo repository.IReadingRepo
	ImageGen    service.IImageGenerator
	TextGen     service.ITextGenerator

	// Опциональные зависимости, nil допустим: их отказ не влияет на ответ
	Cache   cache.Cache
	Archive storage.IImageArchive
	Events  kafkaPorts.IEventProducer
	Alerter service.IAlerterService

	// CheckConfig проверка учётных данных генеративного API перед синтезом.
	// Кэш-хиты обслуживаются и без ключа, поэтому проверка живёт здесь,
	// а не на старте приложения
	CheckConfig func() error

	Clock    clock.Clock
	PickCard func() domain.Card
	Log      *slog.Logger
}

// New создаёт сервис раскладов с равномерным выбором карты из колоды
func New(
	userRepo repository.IUserRepo,
	readingRepo repository.IReadingRepo,
	imageGen service.IImageGenerator,
	textGen service.ITextGenerator,
	clk clock.Clock,
	log *slog.Logger,
) *Service {
	return &Service{
		UserRepo:    userRepo,
		ReadingRepo: readingRepo,
		ImageGen:    imageGen,
		TextGen:     textGen,
		Clock:       clk,
		PickCard: func() domain.Card {
			return domain.CardAt(rand.IntN(domain.DeckSize()))
		},
		Log: log,
	}
}
