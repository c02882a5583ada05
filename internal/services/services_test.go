package services

import (
	"testing"

	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.ContentItem{},
		&models.ContentLike{},
		&models.Notification{},
		&models.Report{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role roles.Role) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Name:     "Test " + string(role),
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedItem(t *testing.T, db *gorm.DB, owner *models.User, status string, public bool) *models.ContentItem {
	t.Helper()

	item := &models.ContentItem{
		ID:             uuid.New(),
		UserID:         owner.ID,
		Kind:           models.KindDua,
		Title:          "Morning dua",
		ApprovalStatus: status,
		IsPublic:       public,
		AuthorName:     owner.Name,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
