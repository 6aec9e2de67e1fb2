package models

import "time"

type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderAgent    Sender = "agent"
)

type MessageType string

const (
	TypeText  MessageType = "text"
	TypeImage MessageType = "image"
	TypeFile  MessageType = "file"
	TypeAudio MessageType = "audio"
)

// MessageStatus moves sent -> delivered -> read, or ends in failed.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
)

// Contact represents a customer conversation shown in the contact list
type Contact struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	Unread          int       `json:"unread"`
	Avatar          string    `json:"avatar"` // initials
}

// Message represents a single chat message owned by a contact
type Message struct {
	ID        int64         `json:"id"`
	ContactID int64         `json:"contactId"`
	Sender    Sender        `json:"sender"`
	Content   string        `json:"content"`
	Type      MessageType   `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
	IsBot     bool          `json:"isBot"`
	Prompt    string        `json:"prompt,omitempty"`
}

// FeedItem is a message enriched with the owning contact for dashboard and log views
type FeedItem struct {
	Message
	ContactName   string `json:"contactName"`
	ContactAvatar string `json:"contactAvatar"`
	DisplayTime   string `json:"displayTime"`
}
