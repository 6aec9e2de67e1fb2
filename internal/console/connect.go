package console

import (
	"context"
	"fmt"

	"whatsapp-console/pkg/models"
)

// ConnectionSnapshot is published on every connection change
type ConnectionSnapshot struct {
	APIStatus        models.APIStatus        `json:"apiStatus"`
	ConnectionStatus models.ConnectionStatus `json:"connectionStatus"`
	Connected        bool                    `json:"connected"`
	Connecting       bool                    `json:"connecting"`
}

func (c *Console) connectionSnapshot() ConnectionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectionSnapshotLocked()
}

func (c *Console) connectionSnapshotLocked() ConnectionSnapshot {
	return ConnectionSnapshot{
		APIStatus:        c.apiStatus,
		ConnectionStatus: c.conn,
		Connected:        c.connected,
		Connecting:       c.connecting,
	}
}

// ConnectWhatsApp verifies the saved credentials against the Graph API and,
// on success, loads the simulated live feed and starts the simulator.
// It returns the phone number shown for the connection.
func (c *Console) ConnectWhatsApp(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.connecting {
		c.mu.Unlock()
		return "", ErrConnecting
	}
	if !c.configSaved || c.draft.PhoneNumberID == "" || c.draft.APIToken == "" {
		c.mu.Unlock()
		return "", ErrConfigNotSaved
	}
	c.connecting = true
	c.conn.WhatsApp = false
	c.connected = false
	c.resetChatLocked()
	phoneNumberID, token := c.draft.PhoneNumberID, c.draft.APIToken
	gen := c.generation
	c.mu.Unlock()

	c.syncSimulator()
	c.emit(event{EventChatReset, nil}, event{EventConnection, c.connectionSnapshot()})

	pn, err := c.graph.GetPhoneNumber(ctx, phoneNumberID, token)

	c.mu.Lock()
	c.connecting = false
	// a logout, reset or disconnect during the call bumps the generation
	ended := !c.authenticated || gen != c.generation
	if err != nil || ended {
		c.dropConnectionLocked()
		snap := c.connectionSnapshotLocked()
		c.mu.Unlock()

		c.emit(event{EventConnection, snap})
		if ended {
			return "", ErrSessionEnded
		}
		c.logger.Error("whatsapp connection failed", "phoneNumberId", phoneNumberID, "error", err)
		return "", fmt.Errorf("%w: %w", ErrConnectFailed, err)
	}

	phone := pn.DisplayPhoneNumber
	if phone == "" {
		phone = phoneNumberID
	}
	now := c.now()
	c.conn.WhatsApp = true
	c.apiStatus.Online = true
	c.apiStatus.APIConnected = true
	c.apiStatus.PhoneNumber = phone
	c.apiStatus.LastSync = now
	c.connected = true
	c.seedLocked(now)
	snap := c.connectionSnapshotLocked()
	c.mu.Unlock()

	c.syncSimulator()
	c.emit(event{EventConnection, snap})
	c.logger.Info("whatsapp connected, simulated live data loaded", "phone", phone)
	return phone, nil
}

// Disconnect drops the connection and the simulated feed.
func (c *Console) Disconnect() {
	c.mu.Lock()
	c.dropConnectionLocked()
	c.resetChatLocked()
	snap := c.connectionSnapshotLocked()
	c.mu.Unlock()

	c.syncSimulator()
	c.emit(event{EventChatReset, nil}, event{EventConnection, snap})
}

// Connected reports whether the simulated live feed is active.
func (c *Console) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}
