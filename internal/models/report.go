package models

import (
	"time"

	"github.com/google/uuid"
)

// Report reason codes and review statuses accepted on the wire.
var (
	ReportReasons  = []string{"inaccurate", "inappropriate", "spam", "copyright", "other"}
	ReportStatuses = []string{"pending", "reviewed", "resolved", "dismissed"}
)

// Report is a member complaint about a content item.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ContentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"content_id"`
	ContentKind string    `gorm:"not null;size:20" json:"content_kind"`
	Reason      string    `gorm:"not null;size:50" json:"reason"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	Status      string    `gorm:"not null;default:'pending';size:20;index" json:"status"`
	AdminNotes  string    `gorm:"size:1000" json:"admin_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Reporter    User      `gorm:"foreignKey:ReporterID" json:"-"`
}
