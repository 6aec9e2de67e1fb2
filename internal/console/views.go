package console

import (
	"time"

	"whatsapp-console/internal/ai"
	"whatsapp-console/pkg/models"
)

const recentLimit = 5

type Dashboard struct {
	APIStatus        models.APIStatus        `json:"apiStatus"`
	Stats            models.Stats            `json:"stats"`
	ConnectionStatus models.ConnectionStatus `json:"connectionStatus"`
	ConfigSaved      bool                    `json:"configSaved"`
	Connected        bool                    `json:"connected"`
	Connecting       bool                    `json:"connecting"`
	HasAIKey         bool                    `json:"hasAiKey"`
	Recent           []models.FeedItem       `json:"recent"`
}

// Stats derives the counters from the current feed.
func (c *Console) Stats() models.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *Console) statsLocked() models.Stats {
	s := models.Stats{TotalMessages: len(c.messages)}
	for _, ct := range c.contacts {
		s.UnreadMessages += ct.Unread
	}
	for _, m := range c.messages {
		if m.Sender != models.SenderAgent {
			continue
		}
		if m.IsBot {
			s.BotReplies++
		} else {
			s.ManualReplies++
		}
	}
	return s
}

// Dashboard returns the status overview with the latest customer messages, newest first.
func (c *Console) Dashboard() Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := Dashboard{
		APIStatus:        c.apiStatus,
		Stats:            c.statsLocked(),
		ConnectionStatus: c.conn,
		ConfigSaved:      c.configSaved,
		Connected:        c.connected,
		Connecting:       c.connecting,
		HasAIKey:         ai.KeyConfigured(c.aiKey),
		Recent:           []models.FeedItem{},
	}
	if !c.connected {
		return d
	}
	now := c.now()
	for i := len(c.messages) - 1; i >= 0 && len(d.Recent) < recentLimit; i-- {
		if c.messages[i].Sender == models.SenderCustomer {
			d.Recent = append(d.Recent, c.feedItemLocked(c.messages[i], now))
		}
	}
	return d
}

// Logs returns every agent message in append order.
func (c *Console) Logs() []models.FeedItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []models.FeedItem{}
	if !c.connected {
		return out
	}
	now := c.now()
	for _, m := range c.messages {
		if m.Sender == models.SenderAgent {
			out = append(out, c.feedItemLocked(m, now))
		}
	}
	return out
}

func (c *Console) feedItemLocked(m models.Message, now time.Time) models.FeedItem {
	item := models.FeedItem{Message: m, DisplayTime: FormatTime(m.Timestamp, now)}
	if i := c.contactIndexLocked(m.ContactID); i >= 0 {
		item.ContactName = c.contacts[i].Name
		item.ContactAvatar = c.contacts[i].Avatar
	}
	return item
}

// FormatTime renders t as a clock time when it is less than a day old, else as a date.
func FormatTime(t, now time.Time) string {
	if now.Sub(t) < 24*time.Hour {
		return t.Format("03:04 PM")
	}
	return t.Format("Jan 2")
}
