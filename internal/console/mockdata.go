package console

import (
	"time"

	"whatsapp-console/pkg/models"
)

// liveMockData is the synthetic feed loaded once the API connection succeeds.
func liveMockData(now time.Time) ([]models.Contact, []models.Message) {
	ago := func(ms int64) time.Time { return now.Add(-time.Duration(ms) * time.Millisecond) }

	contacts := []models.Contact{
		{ID: 101, Name: "Alice Johnson", Phone: "+1122334455", LastMessage: "Hey, is the store open?", LastMessageTime: ago(120000), Unread: 1, Avatar: "AJ"},
		{ID: 102, Name: "Bob Williams", Phone: "+9988776655", LastMessage: "Got it, thanks!", LastMessageTime: ago(300000), Unread: 0, Avatar: "BW"},
		{ID: 103, Name: "Charlie Brown", Phone: "+5544332211", LastMessage: "Can I change my order?", LastMessageTime: ago(60000), Unread: 3, Avatar: "CB"},
		{ID: 104, Name: "Diana Prince", Phone: "+7788990011", LastMessage: "Awesome!", LastMessageTime: ago(900000), Unread: 0, Avatar: "DP"},
		{ID: 105, Name: "Eve Davis", Phone: "+3322110099", LastMessage: "Need help with login.", LastMessageTime: ago(180000), Unread: 2, Avatar: "ED"},
	}

	messages := []models.Message{
		{ID: 1001, ContactID: 101, Sender: models.SenderCustomer, Content: "Hey, is the store open?", Type: models.TypeText, Timestamp: ago(120000), Status: models.StatusRead},
		{ID: 1002, ContactID: 101, Sender: models.SenderAgent, Content: "Yes, we are open until 6 PM today!", Type: models.TypeText, Timestamp: ago(100000), Status: models.StatusRead, IsBot: true},
		{ID: 1003, ContactID: 103, Sender: models.SenderCustomer, Content: "Hi, can I change my order from yesterday?", Type: models.TypeText, Timestamp: ago(60000), Status: models.StatusDelivered},
		{ID: 1004, ContactID: 103, Sender: models.SenderAgent, Content: "Certainly! What is your order number?", Type: models.TypeText, Timestamp: ago(50000), Status: models.StatusSent, IsBot: true},
		{ID: 1005, ContactID: 105, Sender: models.SenderCustomer, Content: "I forgot my password, can you help?", Type: models.TypeText, Timestamp: ago(180000), Status: models.StatusDelivered},
		{ID: 1006, ContactID: 105, Sender: models.SenderAgent, Content: `No problem! Please click the "Forgot Password" link on the login page.`, Type: models.TypeText, Timestamp: ago(170000), Status: models.StatusSent, IsBot: true},
	}

	return contacts, messages
}

// seedLocked replaces the feed with the mock data.
func (c *Console) seedLocked(now time.Time) {
	c.contacts, c.messages = liveMockData(now)
	for _, m := range c.messages {
		if m.ID > c.lastID {
			c.lastID = m.ID
		}
	}
}
