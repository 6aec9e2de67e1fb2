// Command migrate_data copies the saved console configuration from the local
// SQLite file into the store selected by the environment (PostgreSQL or Redis).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"whatsapp-console/internal/config"
	"whatsapp-console/internal/settings"
)

func main() {
	if err := run(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.SettingsStore == config.StoreSQL && cfg.DBDriver == config.DriverSQLite {
		return errors.New("destination is the SQLite source; set SETTINGS_STORE=redis or DB_DRIVER=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// 1. Source
	srcCfg := *cfg
	srcCfg.SettingsStore = config.StoreSQL
	srcCfg.DBDriver = config.DriverSQLite
	src, closeSrc, err := settings.Open(ctx, &srcCfg)
	if err != nil {
		return fmt.Errorf("open sqlite source %s: %w", cfg.DBPath, err)
	}
	defer closeSrc()

	// 2. Destination
	dst, closeDst, err := settings.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s destination: %w", cfg.SettingsStore, err)
	}
	defer closeDst()

	slog.Info("starting settings migration", "from", cfg.DBPath, "to", cfg.SettingsStore)
	copied, err := settings.Copy(ctx, src, dst)
	if err != nil {
		return err
	}
	if !copied {
		slog.Info("no saved configuration in source, nothing to migrate")
		return nil
	}
	slog.Info("migration completed successfully")
	return nil
}
