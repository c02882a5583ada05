package handlers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mehedialhasan/tadabbur-backend/internal/feed"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"
	"github.com/mehedialhasan/tadabbur-backend/internal/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type likeFixture struct {
	app    *fiber.App
	feeds  *feed.Registry
	viewer *models.User
	item   *models.ContentItem
}

// newLikeFixture wires a real ContentHandler over an in-memory DB, with a
// stub auth middleware standing in for JWTProtected+RoleRequired.
func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ContentItem{},
		&models.ContentLike{},
		&models.Notification{},
	))

	owner := &models.User{ID: uuid.New(), Name: "Owner", Email: "owner@example.com", Password: "x", Role: roles.User, IsActive: true}
	viewer := &models.User{ID: uuid.New(), Name: "Viewer", Email: "viewer@example.com", Password: "x", Role: roles.User, IsActive: true}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(viewer).Error)

	item := &models.ContentItem{
		ID:             uuid.New(),
		UserID:         owner.ID,
		Kind:           models.KindDua,
		Title:          "Morning dua",
		ApprovalStatus: models.StatusApproved,
		IsPublic:       true,
		AuthorName:     owner.Name,
	}
	require.NoError(t, db.Create(item).Error)

	contentService := services.NewContentService(db, services.NewModerationService(db))
	approvalService := services.NewApprovalService(db, services.NewNotificationService(db))
	feeds := feed.NewRegistry(services.NewFeedSource(contentService), time.Minute)
	handler := NewContentHandler(contentService, approvalService, feeds)

	app := fiber.New()
	asViewer := func(c *fiber.Ctx) error {
		c.Locals("actor", viewer)
		return c.Next()
	}
	app.Post("/items/:id/like", asViewer, handler.Like)
	app.Delete("/items/:id/like", asViewer, handler.Unlike)

	return &likeFixture{app: app, feeds: feeds, viewer: viewer, item: item}
}

func TestLikeInvalidatesCachedFeed(t *testing.T) {
	fx := newLikeFixture(t)

	// Prime the viewer's cached feed before the mutation.
	engine, fresh := fx.feeds.Get(fx.viewer.ID)
	require.False(t, fresh)
	require.NoError(t, engine.Load(context.Background()))
	_, fresh = fx.feeds.Get(fx.viewer.ID)
	require.True(t, fresh)

	resp, err := fx.app.Test(httptest.NewRequest("POST", "/items/"+fx.item.ID.String()+"/like", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The cached snapshot predates the like, so it must be dropped.
	engine, fresh = fx.feeds.Get(fx.viewer.ID)
	assert.False(t, fresh, "liking outside the feed drops the cached snapshot")

	require.NoError(t, engine.Load(context.Background()))
	favs, err := engine.Projection(feed.TabFavorites)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, fx.item.ID, favs[0].ID)
	assert.True(t, favs[0].IsLiked)
	assert.Equal(t, 1, favs[0].LikesCount)
}

func TestUnlikeInvalidatesCachedFeed(t *testing.T) {
	fx := newLikeFixture(t)

	resp, err := fx.app.Test(httptest.NewRequest("POST", "/items/"+fx.item.ID.String()+"/like", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	engine, fresh := fx.feeds.Get(fx.viewer.ID)
	require.False(t, fresh)
	require.NoError(t, engine.Load(context.Background()))
	_, fresh = fx.feeds.Get(fx.viewer.ID)
	require.True(t, fresh)

	resp, err = fx.app.Test(httptest.NewRequest("DELETE", "/items/"+fx.item.ID.String()+"/like", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	engine, fresh = fx.feeds.Get(fx.viewer.ID)
	assert.False(t, fresh)

	require.NoError(t, engine.Load(context.Background()))
	favs, err := engine.Projection(feed.TabFavorites)
	require.NoError(t, err)
	assert.Empty(t, favs)
}
