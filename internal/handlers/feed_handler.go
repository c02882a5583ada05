package handlers

import (
	"github.com/mehedialhasan/tadabbur-backend/internal/feed"
	"github.com/mehedialhasan/tadabbur-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// FeedHandler serves the reconciled all/mine/favorites projections. The
// per-viewer engine is cached, so switching tabs reuses the loaded union
// and only like toggles change what favorites contains.
type FeedHandler struct {
	feeds *feed.Registry
}

func NewFeedHandler(feeds *feed.Registry) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	engine, fresh := h.feeds.Get(actor.ID)
	if !fresh || c.QueryBool("refresh", false) {
		if err := engine.Load(c.Context()); err != nil {
			return respondErr(c, err)
		}
	}

	tab := c.Query("tab", feed.TabAll)
	views, err := engine.Projection(tab)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{
		"tab":   tab,
		"items": views,
		"total": len(views),
	})
}

func (h *FeedHandler) ToggleLike(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	engine, fresh := h.feeds.Get(actor.ID)
	if !fresh {
		if err := engine.Load(c.Context()); err != nil {
			return respondErr(c, err)
		}
	}

	view, err := engine.ToggleLike(c.Context(), itemID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(view)
}
