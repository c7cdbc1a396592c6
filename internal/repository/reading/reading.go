package readingRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ryabchinskiymike/taro-bot/internal/domain"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/persistence"
	ports "github.com/ryabchinskiymike/taro-bot/internal/ports/repository"
)

// pgUniqueViolation код ошибки Postgres при нарушении уникального ограничения
const pgUniqueViolation = "23505"

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 100
)

// clampHistoryLimit нормализует лимит выборки истории: ноль и отрицательные
// значения заменяются дефолтом, верхняя граница защищает базу от
// произвольно больших LIMIT из query-параметра
func clampHistoryLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

type readingColumns struct {
	TableName string
	ID        string
	UserID    string
	Date      string
	CardName  string
	CardImage string
	Horoscope string
	Finance   string
	Relations string
	Advice    string
	Ts        string
	CreatedAt string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns readingColumns
}

// New создаёт новый репозиторий для работы с раскладами
func New(db persistence.Persistence, log *slog.Logger) ports.IReadingRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: readingColumns{
			TableName: "readings",
			ID:        "id",
			UserID:    "user_id",
			Date:      "date",
			CardName:  "card_name",
			CardImage: "card_image",
			Horoscope: "horoscope",
			Finance:   "finance",
			Relations: "relations",
			Advice:    "advice",
			Ts:        "ts",
			CreatedAt: "created_at",
		},
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.Date,
		r.columns.CardName,
		r.columns.CardImage,
		r.columns.Horoscope,
		r.columns.Finance,
		r.columns.Relations,
		r.columns.Advice,
		r.columns.Ts,
		r.columns.CreatedAt)
}

// Create вставляет новый расклад. Вставка атомарная: при гонке двух первых
// запросов дня уникальное ограничение (user_id, date) отклонит второй INSERT,
// и вызывающий получит domain.ErrReadingExists.
func (r *Repository) Create(ctx context.Context, reading *domain.Reading) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		reading.ID,
		reading.UserID,
		reading.Date,
		reading.CardName,
		reading.CardImage,
		reading.Horoscope,
		reading.Finance,
		reading.Relations,
		reading.Advice,
		reading.Timestamp,
		reading.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.Log.Debug("reading already exists",
				"user_id", reading.UserID,
				"date", reading.Date)
			return fmt.Errorf("reading for %s on %s: %w", reading.UserID, reading.Date, domain.ErrReadingExists)
		}
		r.Log.Error("failed to create reading",
			"error", err,
			"user_id", reading.UserID,
			"date", reading.Date)
		return fmt.Errorf("failed to create reading: %w", err)
	}

	r.Log.Debug("reading created successfully",
		"id", reading.ID,
		"user_id", reading.UserID,
		"date", reading.Date)
	return nil
}

// GetByUserAndDate возвращает расклад пользователя на дату или domain.ErrNotFound
func (r *Repository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*domain.Reading, error) {
	var reading domain.Reading
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.Date)
	err := r.db.Get(ctx, &reading, query, userID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reading for %s on %s: %w", userID, date, domain.ErrNotFound)
		}
		r.Log.Error("failed to get reading",
			"error", err,
			"user_id", userID,
			"date", date)
		return nil, fmt.Errorf("failed to get reading: %w", err)
	}
	return &reading, nil
}

// ListByUser возвращает историю раскладов пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Reading, error) {
	limit = clampHistoryLimit(limit)

	var readings []domain.Reading
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.Ts)
	err := r.db.Select(ctx, &readings, query, userID, limit)
	if err != nil {
		r.Log.Error("failed to list readings",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return readings, nil
}
