package models

import "time"

// Message is one doctor<->patient message. Same-role messaging is rejected at
// the service layer, there is no constraint for it in the schema.
type Message struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	SenderID    uint64    `gorm:"not null;index" json:"sender"`
	RecipientID uint64    `gorm:"not null;index" json:"recipient"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	SenderUser *User `gorm:"foreignKey:SenderID" json:"sender_user,omitempty"`
}

type SendMessageInput struct {
	RecipientEmail string `json:"recipient_email"`
	Content        string `json:"content"`
}
