package models

import (
	"time"
)

// ChatMessage represents a message exchanged between a worker and an owner
// in the context of a job application
type ChatMessage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SenderID      uint      `gorm:"not null" json:"senderId"`
	ReceiverID    uint      `gorm:"not null" json:"receiverId"`
	ApplicationID uint      `gorm:"not null;index" json:"applicationId"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Read          bool      `gorm:"default:false" json:"read"`
	SentAt        time.Time `json:"sentAt"`
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}
