package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whatsapp-console/internal/ai"
	"whatsapp-console/internal/api"
	"whatsapp-console/internal/auth"
	"whatsapp-console/internal/config"
	"whatsapp-console/internal/console"
	"whatsapp-console/internal/probe"
	"whatsapp-console/internal/settings"
	"whatsapp-console/internal/whatsapp"
	"whatsapp-console/internal/ws"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := settings.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s settings store: %w", cfg.SettingsStore, err)
	}
	defer closeStore()

	hub := ws.NewHub(logger.With(slog.String("component", "ws")))
	go hub.Run(ctx)

	whatsappClient := whatsapp.NewClient(cfg.GraphAPIBase, cfg.ProbeTimeout)
	prober := probe.New(cfg.ProbeTimeout, logger.With(slog.String("component", "probe")))
	gemini := ai.NewGeminiClient(cfg.GeminiModel)

	con, err := console.New(store, whatsappClient, prober, gemini, console.Options{
		SimulationInterval: cfg.SimulationInterval,
		DeliveredDelay:     cfg.StatusDeliveredDelay,
		ReadDelay:          cfg.StatusReadDelay,
		AIKey:              cfg.GeminiAPIKey,
		Logger:             logger,
		Notifier:           hub,
	})
	if err != nil {
		return fmt.Errorf("create console: %w", err)
	}
	defer con.Close()

	sessions := auth.NewManager(cfg.OTPCode, cfg.OTPMinLength)
	r := api.NewRouter(sessions, con, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "settingsStore", cfg.SettingsStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("run server: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
