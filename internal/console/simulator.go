package console

import (
	"context"
	"fmt"

	"whatsapp-console/pkg/models"
)

// NewMessageEvent carries an appended message and the contact it updated
type NewMessageEvent struct {
	Message models.Message `json:"message"`
	Contact models.Contact `json:"contact"`
}

// simulateIncoming appends a synthetic customer message to a random contact.
func (c *Console) simulateIncoming(context.Context) {
	c.mu.Lock()
	if len(c.contacts) == 0 || !c.authenticated || !c.connected {
		c.mu.Unlock()
		return
	}

	contact := &c.contacts[c.rng.IntN(len(c.contacts))]
	now := c.now()
	msg := models.Message{
		ID:        c.nextIDLocked(now),
		ContactID: contact.ID,
		Sender:    models.SenderCustomer,
		Content:   fmt.Sprintf("New message from %s - %s", contact.Name, now.Format("3:04:05 PM")),
		Type:      models.TypeText,
		Timestamp: now,
		Status:    models.StatusDelivered,
	}
	c.messages = append(c.messages, msg)
	contact.LastMessage = msg.Content
	contact.LastMessageTime = msg.Timestamp
	contact.Unread++
	ev := NewMessageEvent{Message: msg, Contact: *contact}
	c.mu.Unlock()

	c.emit(event{EventNewMessage, ev})
}
