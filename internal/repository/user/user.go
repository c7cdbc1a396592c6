package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ryabchinskiymike/taro-bot/internal/domain"
	"github.com/ryabchinskiymike/taro-bot/internal/ports/persistence"
	ports "github.com/ryabchinskiymike/taro-bot/internal/ports/repository"
)

type userColumns struct {
	TableName string
	ID        string
	TgID      string
	Name      string
	CreatedAt string
	UpdatedAt string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с пользователями
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: userColumns{
			TableName: "tg_users",
			ID:        "id",
			TgID:      "tg_id",
			Name:      "name",
			CreatedAt: "created_at",
			UpdatedAt: "updated_at",
		},
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.TgID,
		r.columns.Name,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Upsert создаёт пользователя или обновляет имя существующего.
// Пустое имя не затирает сохранённое: для нового пользователя подставляется
// имя по умолчанию, для существующего остаётся прежнее.
func (r *Repository) Upsert(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, COALESCE(NULLIF($3, ''), $4), NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE SET
			%s = COALESCE(NULLIF($3, ''), %s.%s),
			%s = NOW()
		RETURNING %s`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.TgID,
		r.columns.Name, r.columns.TableName, r.columns.Name,
		r.columns.UpdatedAt,
		r.allColumns())

	row := r.db.QueryRow(ctx, query, uuid.New(), user.TgID, user.Name, domain.DefaultUserName)
	if err := row.StructScan(user); err != nil {
		r.Log.Error("failed to upsert user",
			"error", err,
			"tg_id", user.TgID)
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	r.Log.Debug("user upserted successfully",
		"id", user.ID,
		"tg_id", user.TgID)
	return nil
}

// GetByTgID получает пользователя по Telegram ID
func (r *Repository) GetByTgID(ctx context.Context, tgID string) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.TgID)
	err := r.db.Get(ctx, &user, query, tgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user not found", "tg_id", tgID)
			return nil, fmt.Errorf("user %s: %w", tgID, domain.ErrNotFound)
		}
		r.Log.Error("failed to get user by tg id",
			"error", err,
			"tg_id", tgID)
		return nil, fmt.Errorf("failed to get user by tg id: %w", err)
	}
	return &user, nil
}
