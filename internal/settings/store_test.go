package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"whatsapp-console/internal/config"
	"whatsapp-console/internal/database"
	"whatsapp-console/pkg/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.InitGorm(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "settings.db"),
	})
	if err != nil {
		t.Fatalf("InitGorm() error: %v", err)
	}
	return NewGormStore(db)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func sampleConfig() models.SavedConfig {
	return models.SavedConfig{
		APIConfig: models.APIConfig{
			PhoneNumberID:     "1098765",
			BusinessAccountID: "waba-42",
			APIToken:          "EAAG-token",
			WebhookURL:        "https://hooks.example.com/wa",
			N8nWebhookURL:     "https://n8n.example.com/webhook/ai",
			VerifyToken:       "verify-me",
			BackendAPIURL:     "https://api.example.com",
		},
		SavedAt: time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC),
	}
}

func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	want := sampleConfig()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.APIConfig != want.APIConfig {
		t.Fatalf("config did not round-trip:\nwant %+v\ngot  %+v", want.APIConfig, got.APIConfig)
	}
	if !got.SavedAt.Equal(want.SavedAt) {
		t.Fatalf("expected SavedAt %v, got %v", want.SavedAt, got.SavedAt)
	}

	// Second save overwrites the single entry
	want.APIToken = "rotated"
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after overwrite error: %v", err)
	}
	if got.APIToken != "rotated" {
		t.Fatalf("expected overwritten token, got %q", got.APIToken)
	}

	if err := s.Delete(ctx); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx); err != nil {
		t.Fatalf("Delete() on empty store should be a no-op, got %v", err)
	}
}

func TestGormStore_Contract(t *testing.T) {
	storeContract(t, newGormStore(t))
}

func TestRedisStore_Contract(t *testing.T) {
	s, _ := newRedisStore(t)
	storeContract(t, s)
}

func TestRedisStore_UsesFixedKeyWithoutTTL(t *testing.T) {
	s, mr := newRedisStore(t)

	if err := s.Save(context.Background(), sampleConfig()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !mr.Exists(Key) {
		t.Fatalf("expected key %q to exist", Key)
	}
	if ttl := mr.TTL(Key); ttl != 0 {
		t.Fatalf("expected no TTL, got %v", ttl)
	}

	raw, err := mr.Get(Key)
	if err != nil {
		t.Fatalf("failed to get key: %v", err)
	}
	got, err := decode(raw)
	if err != nil {
		t.Fatalf("stored value is not a config record: %v", err)
	}
	if got.PhoneNumberID != "1098765" {
		t.Fatalf("unexpected phoneNumberId %q", got.PhoneNumberID)
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	if err := mr.Set(Key, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := s.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRedisStore_ContextCanceled(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, sampleConfig()); err == nil {
		t.Fatalf("expected error due to canceled context")
	}
}
