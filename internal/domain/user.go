package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUserName имя по умолчанию, если Telegram не передал имя пользователя
const DefaultUserName = "Странник"

// User пользователь мини-приложения, ключ — Telegram ID
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TgID      string    `json:"tg_id" db:"tg_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser создаёт пользователя; пустое имя заменяется на имя по умолчанию
func NewUser(tgID, name string, now time.Time) *User {
	if name == "" {
		name = DefaultUserName
	}
	return &User{
		ID:        uuid.New(),
		TgID:      tgID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
