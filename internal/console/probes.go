package console

import (
	"context"

	"whatsapp-console/internal/probe"
)

// TestWebhook probes the draft webhook URL and records the outcome.
func (c *Console) TestWebhook(ctx context.Context) (probe.Result, error) {
	c.mu.Lock()
	url := c.draft.WebhookURL
	c.conn.Webhook = false
	c.apiStatus.WebhookConnected = false
	c.mu.Unlock()

	res, err := c.prober.Webhook(ctx, url)
	if err != nil {
		return res, err
	}

	c.mu.Lock()
	c.conn.Webhook = res.Reachable
	c.apiStatus.WebhookConnected = res.Reachable
	snap := c.connectionSnapshotLocked()
	c.mu.Unlock()

	c.emit(event{EventConnection, snap})
	return res, nil
}

// TestN8n posts a test payload to the draft n8n webhook.
func (c *Console) TestN8n(ctx context.Context) (probe.Result, error) {
	c.mu.Lock()
	url := c.draft.N8nWebhookURL
	c.conn.N8n = false
	c.mu.Unlock()

	res, err := c.prober.N8n(ctx, url)
	if err != nil {
		return res, err
	}

	c.mu.Lock()
	c.conn.N8n = res.Reachable
	snap := c.connectionSnapshotLocked()
	c.mu.Unlock()

	c.emit(event{EventConnection, snap})
	return res, nil
}

// TestBackend checks the health endpoint of the draft backend URL.
func (c *Console) TestBackend(ctx context.Context) (probe.Result, error) {
	c.mu.Lock()
	url := c.draft.BackendAPIURL
	c.conn.BackendAPI = false
	c.mu.Unlock()

	res, err := c.prober.Backend(ctx, url)
	if err != nil {
		return res, err
	}

	c.mu.Lock()
	c.conn.BackendAPI = res.Reachable
	snap := c.connectionSnapshotLocked()
	c.mu.Unlock()

	c.emit(event{EventConnection, snap})
	return res, nil
}
