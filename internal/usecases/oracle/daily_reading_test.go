package oracle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// --- фейки портов ---

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*domain.User // tg_id -> user
	upsertCalls int
	failUpsert  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.failUpsert != nil {
		return f.failUpsert
	}
	existing, ok := f.users[user.TgID]
	if !ok {
		if user.Name == "" {
			user.Name = domain.DefaultUserName
		}
		user.ID = uuid.New()
		stored := *user
		f.users[user.TgID] = &stored
		return nil
	}
	if user.Name == "" {
		user.Name = existing.Name
	} else {
		existing.Name = user.Name
	}
	user.ID = existing.ID
	return nil
}

func (f *fakeUserRepo) GetByTgID(_ context.Context, tgID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[tgID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", tgID, domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

type fakeReadingRepo struct {
	mu          sync.Mutex
	rows        map[string]domain.Reading // user_id|date -> row
	getCalls    int
	createCalls int
	failCreate  error
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{rows: make(map[string]domain.Reading)}
}

func rowKey(userID uuid.UUID, date string) string {
	return userID.String() + "|" + date
}

func (f *fakeReadingRepo) Create(_ context.Context, reading *domain.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreate != nil {
		return f.failCreate
	}
	key := rowKey(reading.UserID, reading.Date)
	if _, exists := f.rows[key]; exists {
		return fmt.Errorf("row %s: %w", key, domain.ErrReadingExists)
	}
	f.rows[key] = *reading
	return nil
}

func (f *fakeReadingRepo) GetByUserAndDate(_ context.Context, userID uuid.UUID, date string) (*domain.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	row, ok := f.rows[rowKey(userID, date)]
	if !ok {
		return nil, fmt.Errorf("no reading: %w", domain.ErrNotFound)
	}
	copied := row
	return &copied, nil
}

func (f *fakeReadingRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]domain.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var readings []domain.Reading
	for _, row := range f.rows {
		if row.UserID == userID {
			readings = append(readings, row)
		}
	}
	return readings, nil
}

type fakeImageGen struct {
	b64   string
	err   error
	calls int32
}

func (f *fakeImageGen) GenerateCardImage(_ context.Context, _ domain.Card) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.b64, f.err
}

type fakeTextGen struct {
	prediction *domain.Prediction
	err        error
	calls      int32
}

func (f *fakeTextGen) GeneratePrediction(_ context.Context, _ domain.Card, _ string) (*domain.Prediction, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.prediction == nil {
		return nil, f.err
	}
	copied := *f.prediction
	return &copied, f.err
}

type fakeAlerter struct {
	calls int32
}

func (f *fakeAlerter) SendAlert(_ context.Context, _ string) error {
	atomic.AddInt32(&f.calls, 1)
	return nil
}

// fixedClock часы с управляемой датой для проверки смены дня
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Today() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Format("2006-01-02")
}

func (c *fixedClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func starPrediction() *domain.Prediction {
	return &domain.Prediction{
		CardName:  "Звезда",
		Horoscope: "День принесёт ясность и надежду.",
		Finance:   "Вложение окупится.",
		Relations: "Будь искренним.",
		Advice:    "Следуй за своей звездой.",
	}
}

type testEnv struct {
	svc      *Service
	users    *fakeUserRepo
	readings *fakeReadingRepo
	imageGen *fakeImageGen
	textGen  *fakeTextGen
	clock    *fixedClock
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	readings := newFakeReadingRepo()
	imageGen := &fakeImageGen{b64: "AAAA"}
	textGen := &fakeTextGen{prediction: starPrediction()}
	clk := &fixedClock{now: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}

	svc := New(users, readings, imageGen, textGen, clk, testLogger())
	svc.PickCard = func() domain.Card { return "The Star" }

	return &testEnv{
		svc:      svc,
		users:    users,
		readings: readings,
		imageGen: imageGen,
		textGen:  textGen,
		clock:    clk,
	}
}

// --- тесты ---

func TestGetOrCreateReading_MissingID(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetOrCreateReading(context.Background(), "  ", "Anna")
	if !errors.Is(err, domain.ErrMissingUserID) {
		t.Fatalf("err = %v, want ErrMissingUserID", err)
	}
	if env.users.upsertCalls != 0 {
		t.Error("validation must reject before any side effect")
	}
	if atomic.LoadInt32(&env.imageGen.calls) != 0 || atomic.LoadInt32(&env.textGen.calls) != 0 {
		t.Error("validation must reject before any external call")
	}
}

func TestGetOrCreateReading_Success(t *testing.T) {
	env := newTestEnv()

	reading, err := env.svc.GetOrCreateReading(context.Background(), "42", "Anna")
	if err != nil {
		t.Fatalf("GetOrCreateReading() error = %v", err)
	}

	if reading.Date != "2025-03-14" {
		t.Errorf("Date = %q, want 2025-03-14", reading.Date)
	}
	// Имя карты берётся из ответа модели (локализованное), не из колоды
	if reading.CardName != "Звезда" {
		t.Errorf("CardName = %q, want localized name from the model", reading.CardName)
	}
	if reading.CardImage != "data:image/jpeg;base64,AAAA" {
		t.Errorf("CardImage = %q, want data URI with model bytes", reading.CardImage)
	}
	if reading.Horoscope == "" || reading.Finance == "" || reading.Relations == "" || reading.Advice == "" {
		t.Error("all prose fields must be populated")
	}
	if len(env.readings.rows) != 1 {
		t.Errorf("persisted rows = %d, want 1", len(env.readings.rows))
	}
}

func TestGetOrCreateReading_Idempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.GetOrCreateReading(ctx, "42", "Anna")
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}

	second, err := env.svc.GetOrCreateReading(ctx, "42", "Anna")
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same-day readings differ:\nfirst  = %+v\nsecond = %+v", first, second)
	}
	if got := atomic.LoadInt32(&env.imageGen.calls); got != 1 {
		t.Errorf("image generations = %d, want 1 (no calls on cache hit)", got)
	}
	if got := atomic.LoadInt32(&env.textGen.calls); got != 1 {
		t.Errorf("text generations = %d, want 1 (no calls on cache hit)", got)
	}
	if len(env.readings.rows) != 1 {
		t.Errorf("persisted rows = %d, want 1", len(env.readings.rows))
	}
}

func TestGetOrCreateReading_ImageFallback(t *testing.T) {
	env := newTestEnv()
	env.imageGen.b64 = ""
	env.imageGen.err = errors.New("gemini API error [status=429]: RESOURCE_EXHAUSTED")

	reading, err := env.svc.GetOrCreateReading(context.Background(), "42", "Anna")
	if err != nil {
		t.Fatalf("image failure must be absorbed, got error %v", err)
	}

	if reading.CardImage != domain.FallbackImageURL {
		t.Errorf("CardImage = %q, want fallback URL", reading.CardImage)
	}
	// Текстовые поля приходят из модели, заглушка их не трогает
	if reading.CardName != "Звезда" {
		t.Errorf("CardName = %q, want model's name", reading.CardName)
	}
	if reading.Horoscope != starPrediction().Horoscope {
		t.Errorf("Horoscope = %q, want model's text", reading.Horoscope)
	}
}

func TestGetOrCreateReading_TextFallback(t *testing.T) {
	env := newTestEnv()
	env.textGen.prediction = nil
	env.textGen.err = errors.New("prediction JSON parse failed: invalid character")

	reading, err := env.svc.GetOrCreateReading(context.Background(), "42", "Anna")
	if err != nil {
		t.Fatalf("text failure must be absorbed, got error %v", err)
	}

	fallback := domain.FallbackPrediction("The Star")
	if reading.CardName != fallback.CardName {
		t.Errorf("CardName = %q, want drawn card %q", reading.CardName, fallback.CardName)
	}
	if reading.Horoscope != fallback.Horoscope ||
		reading.Finance != fallback.Finance ||
		reading.Relations != fallback.Relations ||
		reading.Advice != fallback.Advice {
		t.Errorf("prose fields must equal static fallback bundle, got %+v", reading)
	}
	if reading.CardImage != "data:image/jpeg;base64,AAAA" {
		t.Errorf("CardImage = %q, image result must survive text fallback", reading.CardImage)
	}
}

func TestGetOrCreateReading_BothFail(t *testing.T) {
	env := newTestEnv()
	env.imageGen.b64 = ""
	env.imageGen.err = errors.New("image synthesis down")
	env.textGen.prediction = nil
	env.textGen.err = errors.New("text synthesis down")
	alerter := &fakeAlerter{}
	env.svc.Alerter = alerter

	reading, err := env.svc.GetOrCreateReading(context.Background(), "42", "Anna")
	if err != nil {
		t.Fatalf("double failure must still produce a reading, got error %v", err)
	}

	if reading.CardImage != domain.FallbackImageURL {
		t.Errorf("CardImage = %q, want fallback URL", reading.CardImage)
	}
	if reading.CardName == "" || reading.Horoscope == "" || reading.Finance == "" ||
		reading.Relations == "" || reading.Advice == "" {
		t.Errorf("fallback reading must be complete, got %+v", reading)
	}
	if atomic.LoadInt32(&alerter.calls) != 1 {
		t.Errorf("alert calls = %d, want 1 on full fallback", alerter.calls)
	}
}

func TestGetOrCreateReading_RandomnessBound(t *testing.T) {
	env := newTestEnv()
	// Дефолтный выбор карты из New, без подмены
	svc := New(env.users, env.readings, env.imageGen, env.textGen, env.clock, testLogger())

	for i := 0; i < 200; i++ {
		card := svc.PickCard()
		if !card.IsValid() {
			t.Fatalf("PickCard() = %q, not in the deck", card)
		}
	}
}

func TestGetOrCreateReading_DateRollover(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.GetOrCreateReading(ctx, "42", "Anna")
	if err != nil {
		t.Fatalf("day D call error = %v", err)
	}

	env.clock.advance(24 * time.Hour)

	second, err := env.svc.GetOrCreateReading(ctx, "42", "Anna")
	if err != nil {
		t.Fatalf("day D+1 call error = %v", err)
	}

	if second.Date == first.Date {
		t.Errorf("D+1 reading has date %q, want a new date", second.Date)
	}
	if got := atomic.LoadInt32(&env.textGen.calls); got != 2 {
		t.Errorf("text generations = %d, want 2 (new generation after rollover)", got)
	}
	if len(env.readings.rows) != 2 {
		t.Errorf("persisted rows = %d, want 2", len(env.readings.rows))
	}
}

func TestGetOrCreateReading_ConcurrentSameDay(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	const workers = 8
	results := make([]*domain.Reading, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.svc.GetOrCreateReading(ctx, "42", "Anna")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d error = %v", i, errs[i])
		}
	}
	if len(env.readings.rows) != 1 {
		t.Fatalf("persisted rows = %d, want exactly 1", len(env.readings.rows))
	}
	for i := 1; i < workers; i++ {
		if results[i].ID != results[0].ID {
			t.Errorf("worker %d got reading %s, worker 0 got %s: all callers must see the same row",
				i, results[i].ID, results[0].ID)
		}
	}
}

func TestGetOrCreateReading_PersistFailure(t *testing.T) {
	env := newTestEnv()
	env.readings.failCreate = errors.New("connection refused")

	_, err := env.svc.GetOrCreateReading(context.Background(), "42", "Anna")
	if err == nil {
		t.Fatal("persistence failure must surface as an error")
	}
	if errors.Is(err, domain.ErrReadingExists) {
		t.Errorf("infrastructure error must not be treated as a race: %v", err)
	}
}

func TestGetOrCreateReading_ConfigError(t *testing.T) {
	env := newTestEnv()
	env.svc.CheckConfig = func() error { return errors.New("gemini api key is required") }

	_, err := env.svc.GetOrCreateReading(context.Background(), "42", "Anna")
	if !domain.IsConfigError(err) {
		t.Fatalf("err = %v, want a configuration error", err)
	}
	if atomic.LoadInt32(&env.imageGen.calls) != 0 {
		t.Error("missing credentials must reject before any external call")
	}
}

func TestGetOrCreateReading_ConfigErrorAfterCacheHit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Расклад на сегодня уже существует
	if _, err := env.svc.GetOrCreateReading(ctx, "42", "Anna"); err != nil {
		t.Fatalf("seed call error = %v", err)
	}

	// Ключ пропал, но кэш-хит обслуживается без генерации
	env.svc.CheckConfig = func() error { return errors.New("gemini api key is required") }

	reading, err := env.svc.GetOrCreateReading(ctx, "42", "Anna")
	if err != nil {
		t.Fatalf("cache hit must be served without credentials, got %v", err)
	}
	if reading.Date != "2025-03-14" {
		t.Errorf("Date = %q, want the cached reading", reading.Date)
	}
}

func TestGetOrCreateReading_DefaultName(t *testing.T) {
	env := newTestEnv()

	if _, err := env.svc.GetOrCreateReading(context.Background(), "42", ""); err != nil {
		t.Fatalf("GetOrCreateReading() error = %v", err)
	}

	user, err := env.users.GetByTgID(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetByTgID() error = %v", err)
	}
	if user.Name != domain.DefaultUserName {
		t.Errorf("Name = %q, want default %q", user.Name, domain.DefaultUserName)
	}
}
