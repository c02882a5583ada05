package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Approval statuses. An item is created pending, moves to approved or
// rejected under review, and back to pending when the owner resubmits.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Content kinds carried by the shared lifecycle.
const (
	KindDua      = "dua"
	KindBlog     = "blog"
	KindQuestion = "question"
)

var ContentKinds = []string{KindDua, KindBlog, KindQuestion}

// ContentItem is a user submission: a dua, blog post or question.
//
// RejectionReason is non-nil exactly while ApprovalStatus is rejected.
// IsVerified can only be set on an approved item and any rejection clears
// it. IsPublic is the owner's intent; the item is effectively public only
// while it is also approved.
type ContentItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind            string         `gorm:"size:20;not null;index" json:"kind"`
	Title           string         `gorm:"not null;size:255" json:"title"`
	Purpose         string         `gorm:"size:500" json:"purpose,omitempty"`
	ArabicText      string         `gorm:"type:text" json:"arabic_text,omitempty"`
	EnglishMeaning  string         `gorm:"type:text" json:"english_meaning,omitempty"`
	NativeMeaning   string         `gorm:"type:text" json:"native_meaning,omitempty"`
	Body            string         `gorm:"type:text" json:"body,omitempty"`
	Category        string         `gorm:"size:50;index" json:"category,omitempty"`
	ApprovalStatus  string         `gorm:"size:20;not null;default:'pending';index" json:"approval_status"`
	RejectionReason *string        `gorm:"size:1000" json:"rejection_reason,omitempty"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	IsPublic        bool           `gorm:"default:false" json:"is_public"`
	LikeCount       int            `gorm:"default:0" json:"like_count"`
	AuthorName      string         `gorm:"size:100" json:"author_name,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivelyPublic reports whether the item may be shown outside its owner:
// owner intent and the moderation gate must both hold.
func (c *ContentItem) EffectivelyPublic() bool {
	return c.IsPublic && c.ApprovalStatus == StatusApproved
}

// ContentLike is the (user, item) like edge backing LikeCount. Created by
// the liking user and removed only by the same user unliking.
type ContentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_content_user" json:"content_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_content_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
