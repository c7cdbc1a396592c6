package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	server "github.com/ryabchinskiymike/taro-bot/internal/adapters/primary/http"
	alerterAdapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/alerter"
	"github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/gemini"
	kafkaAdapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/kafka"
	"github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/storage/s3"
	"github.com/ryabchinskiymike/taro-bot/internal/pkg/logger"
)

type Config struct {
	Postgres *pg.Config             `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config   `envconfig:"REDIS"`
	S3       *s3Adapter.Config      `envconfig:"S3"`
	Kafka    *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Gemini   *gemini.Config         `envconfig:"GEMINI"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
	Log      *logger.Config         `envconfig:"LOG"`
	Server   *server.Config         `envconfig:"APISERVER"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
