package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationSubscriber struct {
	gorm.Model
	Email string `gorm:"not null;uniqueIndex"`
}

// SentNotification is an append-only audit row recorded once per broadcast.
// Nothing in the system reads it back.
type SentNotification struct {
	ID              uint      `gorm:"primaryKey"`
	Message         string    `gorm:"not null"`
	RecipientsCount int       `gorm:"not null"`
	SentAt          time.Time `gorm:"not null"`
}
