package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by the content lifecycle.
const (
	NotifyApproved = "content_approved"
	NotifyRejected = "content_rejected"
	NotifyVerified = "content_verified"
)

// Notification is a durable event for the owner of a reviewed item.
// Delivery transport is out of scope; rows are the emitted events.
type Notification struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type         string     `gorm:"size:50;not null" json:"type"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Message      string     `gorm:"size:1000" json:"message"`
	ContentKind  string     `gorm:"size:20" json:"content_kind,omitempty"`
	ContentID    *uuid.UUID `gorm:"type:uuid;index" json:"content_id,omitempty"`
	ContentTitle string     `gorm:"size:255" json:"content_title,omitempty"`
	IsRead       bool       `gorm:"default:false;index" json:"is_read"`
	CreatedAt    time.Time  `json:"created_at"`
}
