package settings

import (
	"context"
	"errors"

	"whatsapp-console/pkg/models"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context) (*models.SavedConfig, error) {
	raw, err := s.rdb.Get(ctx, Key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

// Save writes the record without expiry.
func (s *RedisStore) Save(ctx context.Context, cfg models.SavedConfig) error {
	value, err := encode(cfg)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, Key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.rdb.Del(ctx, Key).Err()
}
