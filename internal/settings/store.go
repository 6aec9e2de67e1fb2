// Package settings persists the console's configuration record as a single
// JSON blob under a fixed key.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"whatsapp-console/pkg/models"
)

// Key is the fixed key the configuration record lives under.
const Key = "whatsapp_config"

var ErrNotFound = errors.New("no saved configuration found")

type Store interface {
	Load(ctx context.Context) (*models.SavedConfig, error)
	Save(ctx context.Context, cfg models.SavedConfig) error
	Delete(ctx context.Context) error
}

func encode(cfg models.SavedConfig) (string, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}

func decode(raw string) (*models.SavedConfig, error) {
	var cfg models.SavedConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
