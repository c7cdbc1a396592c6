package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/storage"
)

// Client обёртка над minio.Client для архива сгенерированных иллюстраций
type Client struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

// NewClient создаёт новый S3-клиент
func NewClient(client *minio.Client, bucket string, log *slog.Logger) storage.IImageArchive {
	return &Client{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// SaveCardImage кладёт JPEG расклада в бакет и возвращает путь объекта
func (c *Client) SaveCardImage(ctx context.Context, readingID uuid.UUID, jpeg []byte) (string, error) {
	if len(jpeg) == 0 {
		return "", fmt.Errorf("empty image payload")
	}

	objectPath := "cards/" + readingID.String() + ".jpg"

	_, err := c.client.PutObject(ctx, c.bucket, objectPath,
		bytes.NewReader(jpeg), int64(len(jpeg)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", objectPath, err)
	}

	c.log.Debug("card image archived",
		"reading_id", readingID,
		"path", objectPath,
		"size", len(jpeg),
	)

	return objectPath, nil
}
