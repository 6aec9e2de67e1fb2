package console

import (
	"context"
	"errors"
	"fmt"

	"whatsapp-console/internal/settings"
	"whatsapp-console/pkg/models"
)

// Draft returns the working configuration and whether a saved copy is active.
func (c *Console) Draft() (models.APIConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft, c.configSaved
}

// UpdateDraft replaces the working configuration without persisting it.
func (c *Console) UpdateDraft(cfg models.APIConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = cfg
}

// SaveConfig makes cfg the draft and persists it when the required fields are present.
func (c *Console) SaveConfig(ctx context.Context, cfg models.APIConfig) (models.SavedConfig, error) {
	c.mu.Lock()
	c.draft = cfg
	c.mu.Unlock()

	if cfg.PhoneNumberID == "" || cfg.BusinessAccountID == "" || cfg.APIToken == "" {
		return models.SavedConfig{}, ErrMissingRequiredFields
	}

	now := c.now()
	record := models.SavedConfig{APIConfig: cfg, SavedAt: now.UTC()}
	if err := c.store.Save(ctx, record); err != nil {
		return models.SavedConfig{}, fmt.Errorf("save configuration: %w", err)
	}

	c.mu.Lock()
	c.configSaved = true
	c.apiStatus.PhoneNumber = cfg.PhoneNumberID
	c.apiStatus.LastSync = now
	c.mu.Unlock()

	c.logger.Info("configuration saved", "phoneNumberId", cfg.PhoneNumberID)
	return record, nil
}

// LoadConfig restores the saved configuration into the draft.
func (c *Console) LoadConfig(ctx context.Context) (*models.SavedConfig, error) {
	saved, err := c.store.Load(ctx)
	if errors.Is(err, settings.ErrNotFound) {
		return nil, ErrNoSavedConfig
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	c.mu.Lock()
	c.draft = saved.APIConfig
	c.configSaved = true
	c.apiStatus.PhoneNumber = phoneOrNotConnected(saved.PhoneNumberID)
	c.apiStatus.LastSync = c.now()
	c.mu.Unlock()

	return saved, nil
}

// ResetConfig clears every configuration field, the stored record, the AI key
// and the connection, and empties the chats.
func (c *Console) ResetConfig(ctx context.Context) error {
	err := c.store.Delete(ctx)
	if err != nil {
		c.logger.Error("error deleting saved configuration", "error", err)
	}

	c.mu.Lock()
	c.draft = models.DefaultAPIConfig()
	c.configSaved = false
	c.apiStatus.PhoneNumber = models.NotConnected
	c.apiStatus.Online = false
	c.apiStatus.APIConnected = false
	c.conn = models.ConnectionStatus{}
	c.aiKey = ""
	c.connected = false
	c.resetChatLocked()
	c.mu.Unlock()

	c.syncSimulator()
	c.emit(event{EventChatReset, nil}, event{EventConnection, c.connectionSnapshot()})

	if err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}
	return nil
}
