package handlers

import (
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/feed"
	"github.com/mehedialhasan/tadabbur-backend/internal/middleware"
	"github.com/mehedialhasan/tadabbur-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ContentHandler struct {
	contentService  *services.ContentService
	approvalService *services.ApprovalService
	feeds           *feed.Registry
}

func NewContentHandler(contentService *services.ContentService, approvalService *services.ApprovalService, feeds *feed.Registry) *ContentHandler {
	return &ContentHandler{
		contentService:  contentService,
		approvalService: approvalService,
		feeds:           feeds,
	}
}

func (h *ContentHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.contentService.Create(actor, &req)
	if err != nil {
		return respondErr(c, err)
	}

	h.feeds.Invalidate(actor.ID)
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ContentHandler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	var req dto.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.contentService.Update(itemID, actor.ID, &req)
	if err != nil {
		return respondErr(c, err)
	}

	h.feeds.Invalidate(actor.ID)
	return c.JSON(item)
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	if err := h.contentService.Delete(itemID, actor); err != nil {
		return respondErr(c, err)
	}

	h.feeds.Invalidate(actor.ID)
	return c.JSON(fiber.Map{"message": "Content deleted successfully"})
}

func (h *ContentHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	item, err := h.contentService.Get(itemID, actor.ID, actor.Role)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(item)
}

// ListPublic serves the public catalogue: approved, owner-published items.
func (h *ContentHandler) ListPublic(c *fiber.Ctx) error {
	items, err := h.contentService.ListPublic(c.Query("kind", ""))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}

func (h *ContentHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.contentService.ListOwned(actor.ID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}

func (h *ContentHandler) Like(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	count, err := h.contentService.Like(actor.ID, itemID)
	if err != nil {
		return respondErr(c, err)
	}

	h.feeds.Invalidate(actor.ID)
	return c.JSON(fiber.Map{"likes_count": count})
}

func (h *ContentHandler) Unlike(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	count, err := h.contentService.Unlike(actor.ID, itemID)
	if err != nil {
		return respondErr(c, err)
	}

	h.feeds.Invalidate(actor.ID)
	return c.JSON(fiber.Map{"likes_count": count})
}

func (h *ContentHandler) LikeStatus(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	status, err := h.contentService.LikeStatus(actor.ID, itemID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(status)
}

func (h *ContentHandler) Resubmit(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	item, err := h.approvalService.Resubmit(itemID, actor.ID)
	if err != nil {
		return respondErr(c, err)
	}

	h.feeds.Invalidate(actor.ID)
	return c.JSON(item)
}
