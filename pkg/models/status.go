package models

import "time"

const NotConnected = "Not Connected"

// APIStatus describes the messaging API connection as shown on the dashboard
type APIStatus struct {
	PhoneNumber      string    `json:"phoneNumber"`
	Online           bool      `json:"online"`
	WebhookConnected bool      `json:"webhookConnected"`
	APIConnected     bool      `json:"apiConnected"`
	LastSync         time.Time `json:"lastSync"`
}

// Stats are derived counters over the current contacts and messages
type Stats struct {
	TotalMessages  int `json:"totalMessages"`
	UnreadMessages int `json:"unreadMessages"`
	BotReplies     int `json:"botReplies"`
	ManualReplies  int `json:"manualReplies"`
}

// ConnectionStatus holds the outcome of the last check per endpoint
type ConnectionStatus struct {
	WhatsApp   bool `json:"whatsapp"`
	Webhook    bool `json:"webhook"`
	N8n        bool `json:"n8n"`
	BackendAPI bool `json:"backendApi"`
}
