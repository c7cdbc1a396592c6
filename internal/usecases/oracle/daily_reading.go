package oracle

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// GetOrCreateReading возвращает расклад пользователя на сегодня.
// Повторные вызовы в тот же календарный день идемпотентны: возвращается
// сохранённая запись, внешние генерации не выполняются.
func (s *Service) GetOrCreateReading(ctx context.Context, tgID, name string) (*domain.Reading, error) {
	tgID = strings.TrimSpace(tgID)
	if tgID == "" {
		return nil, domain.ErrMissingUserID
	}

	user := &domain.User{TgID: tgID, Name: strings.TrimSpace(name)}
	if err := s.UserRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	today := s.Clock.Today()
	key := readingCacheKey(tgID, today)

	if reading, ok := s.cacheGet(ctx, key); ok {
		return reading, nil
	}

	existing, err := s.ReadingRepo.GetByUserAndDate(ctx, user.ID, today)
	if err == nil {
		s.cacheSet(ctx, key, existing)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing reading: %w", err)
	}

	reading, err := s.generateReading(ctx, user, tgID, today)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, reading)
	return reading, nil
}

// generateReading синтезирует новый расклад из двух внешних вызовов.
// Отказ любой генерации поглощается заглушкой; ошибкой наружу выходят
// только проблемы инфраструктуры (база недоступна и т.п.).
func (s *Service) generateReading(ctx context.Context, user *domain.User, tgID, today string) (*domain.Reading, error) {
	if s.CheckConfig != nil {
		if err := s.CheckConfig(); err != nil {
			return nil, domain.WrapConfigError(err)
		}
	}

	card := s.PickCard()

	var (
		imageB64   string
		imageErr   error
		prediction *domain.Prediction
		textErr    error
	)

	// Обе генерации идут параллельно и обе всегда дожидаются завершения:
	// отказ одной не отменяет другую
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		imageB64, imageErr = s.ImageGen.GenerateCardImage(ctx, card)
	}()
	go func() {
		defer wg.Done()
		prediction, textErr = s.TextGen.GeneratePrediction(ctx, card, user.Name)
	}()
	wg.Wait()

	cardImage := domain.FallbackImageURL
	var rawJPEG []byte
	imageFallback := imageErr != nil || imageB64 == ""
	if imageFallback {
		s.Log.Warn("image generation failed, using fallback",
			"error", imageErr,
			"card", card,
			"tg_id", tgID)
	} else {
		cardImage = "data:image/jpeg;base64," + imageB64
		if data, decodeErr := base64.StdEncoding.DecodeString(imageB64); decodeErr == nil {
			rawJPEG = data
		}
	}

	textFallback := textErr != nil || prediction == nil
	if textFallback {
		s.Log.Warn("text generation failed, using fallback",
			"error", textErr,
			"card", card,
			"tg_id", tgID)
		prediction = domain.FallbackPrediction(card)
	}

	reading := domain.NewReading(user.ID, today, prediction, cardImage, s.Clock.Now())

	if err := s.ReadingRepo.Create(ctx, reading); err != nil {
		if errors.Is(err, domain.ErrReadingExists) {
			// Гонка двух первых запросов дня: проигравший INSERT
			// перечитывает и возвращает строку победителя
			s.Log.Debug("lost insert race, returning winner's reading",
				"tg_id", tgID,
				"date", today)
			return s.ReadingRepo.GetByUserAndDate(ctx, user.ID, today)
		}
		return nil, fmt.Errorf("failed to persist reading: %w", err)
	}

	s.Log.Info("daily reading created",
		"tg_id", tgID,
		"date", today,
		"card", card,
		"image_fallback", imageFallback,
		"text_fallback", textFallback)

	s.afterCreate(ctx, tgID, reading, rawJPEG, imageFallback && textFallback)

	return reading, nil
}

// afterCreate выполняет best-effort шаги после вставки: архив картинки,
// событие в Kafka, алерт при полном отказе генерации. Ни один из них
// не влияет на ответ пользователю.
func (s *Service) afterCreate(ctx context.Context, tgID string, reading *domain.Reading, rawJPEG []byte, fullFallback bool) {
	if s.Archive != nil && len(rawJPEG) > 0 {
		if _, err := s.Archive.SaveCardImage(ctx, reading.ID, rawJPEG); err != nil {
			s.Log.Warn("failed to archive card image",
				"error", err,
				"reading_id", reading.ID)
		}
	}

	if s.Events != nil {
		if err := s.Events.PublishReadingCreated(ctx, tgID, reading); err != nil {
			s.Log.Warn("failed to publish reading event",
				"error", err,
				"reading_id", reading.ID)
		}
	}

	if fullFallback && s.Alerter != nil {
		msg := fmt.Sprintf("taro-bot: обе генерации упали, расклад %s для %s собран из заглушек", reading.Date, tgID)
		if err := s.Alerter.SendAlert(ctx, msg); err != nil {
			s.Log.Warn("failed to send fallback alert", "error", err)
		}
	}
}
