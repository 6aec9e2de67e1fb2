package models

import "time"

const DefaultVerifyToken = "your_verify_token_123"

// APIConfig holds the provider credentials and webhook URLs entered by the operator
type APIConfig struct {
	PhoneNumberID     string `json:"phoneNumberId"`
	BusinessAccountID string `json:"businessAccountId"`
	APIToken          string `json:"apiToken"`
	WebhookURL        string `json:"webhookUrl"`
	N8nWebhookURL     string `json:"n8nWebhookUrl"`
	VerifyToken       string `json:"verifyToken"`
	BackendAPIURL     string `json:"backendApiUrl"`
}

// DefaultAPIConfig returns the blank form state.
func DefaultAPIConfig() APIConfig {
	return APIConfig{VerifyToken: DefaultVerifyToken}
}

// SavedConfig is the persisted configuration record
type SavedConfig struct {
	APIConfig
	SavedAt time.Time `json:"savedAt"`
}
