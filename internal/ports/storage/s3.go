package storage

import (
	"context"

	"github.com/google/uuid"
)

// IImageArchive архив сгенерированных иллюстраций в S3-совместимом хранилище (MinIO).
// Архивирование best-effort: в ответе пользователю картинка всегда остаётся data URI.
type IImageArchive interface {
	// SaveCardImage кладёт сырые байты JPEG под ключ расклада и возвращает путь объекта
	SaveCardImage(ctx context.Context, readingID uuid.UUID, jpeg []byte) (string, error)
}
