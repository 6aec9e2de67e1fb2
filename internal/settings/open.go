package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"whatsapp-console/internal/config"
	"whatsapp-console/internal/database"

	"github.com/redis/go-redis/v9"
)

// Open builds the store selected by cfg.SettingsStore. The returned close
// function releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch cfg.SettingsStore {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("connected to redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return NewRedisStore(rdb), rdb.Close, nil

	case config.StoreSQL:
		db, err := database.InitGorm(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewGormStore(db), sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported settings store %q", cfg.SettingsStore)
	}
}

// Copy moves the saved record from src to dst. It reports false when src is empty.
func Copy(ctx context.Context, src, dst Store) (bool, error) {
	cfg, err := src.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read source: %w", err)
	}
	if err := dst.Save(ctx, *cfg); err != nil {
		return false, fmt.Errorf("write destination: %w", err)
	}
	return true, nil
}
