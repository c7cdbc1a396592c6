package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	server "github.com/ryabchinskiymike/taro-bot/internal/adapters/primary/http"
	healthcheckController "github.com/ryabchinskiymike/taro-bot/internal/adapters/primary/http/controllers/healthcheck"
	oracleController "github.com/ryabchinskiymike/taro-bot/internal/adapters/primary/http/controllers/oracle"
	alerterAdapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/alerter"
	"github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/gemini"
	kafkaAdapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/kafka"
	"github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/ryabchinskiymike/taro-bot/internal/adapters/secondary/storage/s3"
	"github.com/ryabchinskiymike/taro-bot/internal/pkg/clock"
	"github.com/ryabchinskiymike/taro-bot/internal/pkg/logger"
	readingRepo "github.com/ryabchinskiymike/taro-bot/internal/repository/reading"
	userRepo "github.com/ryabchinskiymike/taro-bot/internal/repository/user"
	oracleService "github.com/ryabchinskiymike/taro-bot/internal/usecases/oracle"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) *App {
	return &App{
		Name: name,
		Cfg:  cfg,
		Log:  logger.New(name, cfg.Log),
	}
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("running taro-bot")

	db, err := a.initPostgres()
	if err != nil {
		return fmt.Errorf("failed to init postgres: %w", err)
	}

	persistenceLayer := pg.NewDB(db)
	users := userRepo.New(persistenceLayer, a.Log)
	readings := readingRepo.New(persistenceLayer, a.Log)

	geminiClient := gemini.NewClient(a.Cfg.Gemini, a.Log)

	oracle := oracleService.New(users, readings, geminiClient, geminiClient, clock.NewSystem(), a.Log)
	oracle.CheckConfig = a.Cfg.Gemini.Validate

	// Опциональные адаптеры: кэш, архив картинок, события, алерты
	if a.Cfg.Redis != nil && a.Cfg.Redis.Enabled {
		rdb, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			return fmt.Errorf("failed to init redis: %w", err)
		}
		oracle.Cache = redisAdapter.NewClient(rdb)
		a.Log.Info("redis cache enabled")
	}

	if a.Cfg.S3 != nil && a.Cfg.S3.Enabled {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			return fmt.Errorf("failed to init s3: %w", err)
		}
		oracle.Archive = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
		a.Log.Info("s3 image archive enabled", "bucket", a.Cfg.S3.Bucket)
	}

	var producer *kafkaAdapter.Producer
	if a.Cfg.Kafka != nil && a.Cfg.Kafka.Enabled {
		producer, err = kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			return fmt.Errorf("failed to init kafka producer: %w", err)
		}
		oracle.Events = producer
	}

	if a.Cfg.Alerter != nil && a.Cfg.Alerter.Enabled {
		oracle.Alerter = alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
		a.Log.Info("telegram alerter enabled", "chat_id", a.Cfg.Alerter.ChatID)
	}

	oracleCtrl := oracleController.New(oracle, a.Log)
	healthCheck := healthcheckController.New(db, a.Log)

	httpServer := server.NewHTTPServer(a.Cfg.Server, a.Log, healthCheck, oracleCtrl)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		if oracle.Cache != nil {
			if err := oracle.Cache.Close(); err != nil {
				a.Log.Error("failed to close redis", "error", err)
			}
		}

		if producer != nil {
			if err := producer.Close(); err != nil {
				a.Log.Error("failed to close kafka producer", "error", err)
			}
		}

		if err := db.Close(); err != nil {
			a.Log.Error("failed to close database", "error", err)
		}

		a.Log.Info("application shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("application error", "error", err)
		return err
	}

	return nil
}

func (a *App) initPostgres() (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
