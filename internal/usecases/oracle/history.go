package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// History возвращает историю раскладов пользователя, новые первыми.
// Источник истины — серверное хранилище; для неизвестного пользователя
// история пуста, это не ошибка.
func (s *Service) History(ctx context.Context, tgID string, limit int) ([]domain.Reading, error) {
	tgID = strings.TrimSpace(tgID)
	if tgID == "" {
		return nil, domain.ErrMissingUserID
	}

	user, err := s.UserRepo.GetByTgID(ctx, tgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Reading{}, nil
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	readings, err := s.ReadingRepo.ListByUser(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if readings == nil {
		readings = []domain.Reading{}
	}
	return readings, nil
}
