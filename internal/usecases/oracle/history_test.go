package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

func TestHistory_MissingID(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.History(context.Background(), "", 30)
	if !errors.Is(err, domain.ErrMissingUserID) {
		t.Fatalf("err = %v, want ErrMissingUserID", err)
	}
}

func TestHistory_UnknownUser(t *testing.T) {
	env := newTestEnv()

	readings, err := env.svc.History(context.Background(), "777", 30)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if readings == nil {
		t.Fatal("unknown user must yield an empty slice, not nil")
	}
	if len(readings) != 0 {
		t.Errorf("len = %d, want 0", len(readings))
	}
}

func TestHistory_ReturnsUserReadings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Два дня раскладов для одного пользователя, один для другого
	if _, err := env.svc.GetOrCreateReading(ctx, "42", "Anna"); err != nil {
		t.Fatalf("seed day 1 error = %v", err)
	}
	env.clock.advance(24 * time.Hour)
	if _, err := env.svc.GetOrCreateReading(ctx, "42", "Anna"); err != nil {
		t.Fatalf("seed day 2 error = %v", err)
	}
	if _, err := env.svc.GetOrCreateReading(ctx, "99", "Boris"); err != nil {
		t.Fatalf("seed other user error = %v", err)
	}

	readings, err := env.svc.History(ctx, "42", 30)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("len = %d, want 2", len(readings))
	}

	user, err := env.users.GetByTgID(ctx, "42")
	if err != nil {
		t.Fatalf("GetByTgID() error = %v", err)
	}
	for i, reading := range readings {
		if reading.UserID != user.ID {
			t.Errorf("readings[%d].UserID = %s, want owner %s", i, reading.UserID, user.ID)
		}
	}
}
