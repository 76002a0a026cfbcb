package models

import "time"

// Message is a private message between two users. ExpiresAt is a soft
// deletion marker set by the sender; expiry is not enforced as a hard TTL.
type Message struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	SenderID   uint       `json:"sender_id" gorm:"index"`
	ReceiverID uint       `json:"receiver_id" gorm:"index"`
	Content    string     `json:"content"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1,max=1000"`
}

// ConversationPreview is one entry in the conversation list: the counterparty
// together with the most recent message exchanged with them.
type ConversationPreview struct {
	Counterparty UserCompact `json:"counterparty"`
	LastMessage  Message     `json:"last_message"`
}
