package clock

import (
	"testing"
	"time"
)

func TestSystemToday_Format(t *testing.T) {
	c := NewSystem()
	today := c.Today()

	parsed, err := time.Parse(DateLayout, today)
	if err != nil {
		t.Fatalf("Today() = %q, not parseable as %s: %v", today, DateLayout, err)
	}

	// Дата должна совпадать с текущим днём UTC
	want := time.Now().UTC().Format(DateLayout)
	if today != want {
		t.Errorf("Today() = %q, want %q", today, want)
	}
	if parsed.Location() != time.UTC {
		t.Errorf("parsed location = %v, want UTC", parsed.Location())
	}
}

func TestSystemNow_UTC(t *testing.T) {
	c := NewSystem()
	now := c.Now()
	if now.Location() != time.UTC {
		t.Errorf("Now() location = %v, want UTC", now.Location())
	}
}
