package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// readingCacheTTL чуть больше суток, чтобы ключ пережил смену даты
const readingCacheTTL = 25 * time.Hour

func readingCacheKey(tgID, date string) string {
	return "oracle:reading:" + tgID + ":" + date
}

// cacheGet читает расклад из кэша; любой отказ кэша трактуется как промах
func (s *Service) cacheGet(ctx context.Context, key string) (*domain.Reading, bool) {
	if s.Cache == nil {
		return nil, false
	}

	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.Log.Warn("reading cache get failed", "error", err, "key", key)
		}
		return nil, false
	}

	var reading domain.Reading
	if err := json.Unmarshal([]byte(raw), &reading); err != nil {
		s.Log.Warn("reading cache entry is corrupted", "error", err, "key", key)
		return nil, false
	}

	return &reading, true
}

// cacheSet сохраняет расклад в кэш, отказ только логируется
func (s *Service) cacheSet(ctx context.Context, key string, reading *domain.Reading) {
	if s.Cache == nil {
		return
	}

	raw, err := json.Marshal(reading)
	if err != nil {
		s.Log.Warn("failed to marshal reading for cache", "error", err, "key", key)
		return
	}

	if err := s.Cache.Set(ctx, key, string(raw), readingCacheTTL); err != nil {
		s.Log.Warn("reading cache set failed", "error", err, "key", key)
	}
}
