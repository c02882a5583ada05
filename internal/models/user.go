package models

import (
	"time"

	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Role moves only through the role-change rules
// in the roles package; ID, Email and CreatedAt are immutable after signup.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"not null;size:100" json:"name"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Role           roles.Role     `gorm:"size:20;default:'user'" json:"role"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	NativeLanguage string         `gorm:"size:50" json:"native_language,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
