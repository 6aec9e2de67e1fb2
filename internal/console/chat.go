package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"whatsapp-console/internal/ai"
	"whatsapp-console/pkg/models"
)

// MessageStatusEvent reports a status transition of an agent message
type MessageStatusEvent struct {
	ID     int64                `json:"id"`
	Status models.MessageStatus `json:"status"`
}

// Contacts returns the contacts whose name (case-insensitive) or phone contains query.
func (c *Console) Contacts(query string) []models.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()

	lower := strings.ToLower(query)
	out := make([]models.Contact, 0, len(c.contacts))
	for _, ct := range c.contacts {
		if strings.Contains(strings.ToLower(ct.Name), lower) || strings.Contains(ct.Phone, query) {
			out = append(out, ct)
		}
	}
	return out
}

// SelectContact makes id the active conversation. Unread counts are untouched.
func (c *Console) SelectContact(id int64) (models.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.contactIndexLocked(id)
	if i < 0 {
		return models.Contact{}, ErrContactNotFound
	}
	c.selectedID = id
	return c.contacts[i], nil
}

// SelectedContact returns the active conversation, if any.
func (c *Console) SelectedContact() (models.Contact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.contactIndexLocked(c.selectedID)
	if i < 0 {
		return models.Contact{}, false
	}
	return c.contacts[i], true
}

// Messages returns the selected contact's messages in append order.
func (c *Console) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []models.Message{}
	if c.selectedID == 0 {
		return out
	}
	for _, m := range c.messages {
		if m.ContactID == c.selectedID {
			out = append(out, m)
		}
	}
	return out
}

// SendMessage sends a manual reply to the selected contact.
func (c *Console) SendMessage(content string) (models.Message, error) {
	c.mu.Lock()
	if c.contactIndexLocked(c.selectedID) < 0 {
		c.mu.Unlock()
		return models.Message{}, ErrNoContactSelected
	}
	if strings.TrimSpace(content) == "" {
		c.mu.Unlock()
		return models.Message{}, ErrEmptyMessage
	}
	ev := c.sendLocked(c.selectedID, content, false, "")
	c.mu.Unlock()

	c.emit(event{EventNewMessage, ev})
	return ev.Message, nil
}

// sendLocked appends an agent message, clears the contact's unread count and
// schedules the delivered/read progression.
func (c *Console) sendLocked(contactID int64, content string, isBot bool, prompt string) NewMessageEvent {
	now := c.now()
	msg := models.Message{
		ID:        c.nextIDLocked(now),
		ContactID: contactID,
		Sender:    models.SenderAgent,
		Content:   content,
		Type:      models.TypeText,
		Timestamp: now,
		Status:    models.StatusSent,
		IsBot:     isBot,
		Prompt:    prompt,
	}
	c.messages = append(c.messages, msg)

	i := c.contactIndexLocked(contactID)
	ct := &c.contacts[i]
	ct.LastMessage = msg.Content
	ct.LastMessageTime = msg.Timestamp
	ct.Unread = 0

	c.scheduleStatusLocked(msg.ID, c.deliveredDelay, models.StatusDelivered)
	c.scheduleStatusLocked(msg.ID, c.readDelay, models.StatusRead)

	return NewMessageEvent{Message: msg, Contact: *ct}
}

func (c *Console) scheduleStatusLocked(msgID int64, delay time.Duration, status models.MessageStatus) {
	c.timerSeq++
	key, gen := c.timerSeq, c.generation
	c.timers[key] = time.AfterFunc(delay, func() {
		c.advanceStatus(key, gen, msgID, status)
	})
}

func (c *Console) advanceStatus(key, gen uint64, msgID int64, status models.MessageStatus) {
	c.mu.Lock()
	delete(c.timers, key)
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	found := false
	for i := range c.messages {
		if c.messages[i].ID == msgID {
			c.messages[i].Status = status
			found = true
			break
		}
	}
	c.mu.Unlock()

	if found {
		c.emit(event{EventMessageStatus, MessageStatusEvent{ID: msgID, Status: status}})
	}
}

// SetAIKey selects the Gemini API key used for drafted replies.
func (c *Console) SetAIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aiKey = strings.TrimSpace(key)
}

func (c *Console) HasAIKey() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ai.KeyConfigured(c.aiKey)
}

// GenerateAIReply drafts a reply to the selected contact's last customer
// message and sends it as a bot message.
func (c *Console) GenerateAIReply(ctx context.Context) (models.Message, error) {
	c.mu.Lock()
	i := c.contactIndexLocked(c.selectedID)
	if i < 0 {
		c.mu.Unlock()
		return models.Message{}, ErrNoContactSelected
	}
	if !ai.KeyConfigured(c.aiKey) {
		c.mu.Unlock()
		return models.Message{}, ErrNoAIKey
	}
	contact := c.contacts[i]
	var last string
	var hasLast bool
	for _, m := range c.messages {
		if m.ContactID == contact.ID && m.Sender == models.SenderCustomer {
			last, hasLast = m.Content, true
		}
	}
	key, gen := c.aiKey, c.generation
	c.mu.Unlock()

	reply, err := c.ai.GenerateReply(ctx, key, ai.BuildPrompt(contact.Name, last, hasLast))
	if err != nil {
		if ai.IsInvalidKey(err) {
			c.mu.Lock()
			c.aiKey = ""
			c.mu.Unlock()
		}
		c.logger.Error("failed to get gemini reply", "contactId", contact.ID, "error", err)
		return models.Message{}, fmt.Errorf("%w: %w", ErrAIFailed, err)
	}
	if strings.TrimSpace(reply) == "" {
		return models.Message{}, ErrEmptyReply
	}

	c.mu.Lock()
	if gen != c.generation || c.contactIndexLocked(contact.ID) < 0 {
		c.mu.Unlock()
		return models.Message{}, ErrContactNotFound
	}
	ev := c.sendLocked(contact.ID, reply, true, ai.ReplyPrompt)
	c.mu.Unlock()

	c.emit(event{EventNewMessage, ev})
	return ev.Message, nil
}
