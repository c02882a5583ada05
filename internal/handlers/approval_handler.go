package handlers

import (
	"strconv"

	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/middleware"
	"github.com/mehedialhasan/tadabbur-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ApprovalHandler exposes the review panel: queue, transitions and stats.
// Routes are mounted behind RoleRequired(scholar).
type ApprovalHandler struct {
	approvalService *services.ApprovalService
}

func NewApprovalHandler(approvalService *services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) Queue(c *fiber.Ctx) error {
	kind := c.Query("kind", "")
	status := c.Query("status", "")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	items, total, err := h.approvalService.Queue(kind, status, limit, offset)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	item, err := h.approvalService.Approve(itemID, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(item)
}

func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	var req dto.RejectContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.approvalService.Reject(itemID, actor, req.Reason)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(item)
}

func (h *ApprovalHandler) SetVerified(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	var req dto.VerifyContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.approvalService.SetVerified(itemID, actor, req.Verified)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(item)
}

func (h *ApprovalHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.approvalService.Stats()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}
