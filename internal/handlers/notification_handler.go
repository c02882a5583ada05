package handlers

import (
	"strconv"

	"github.com/mehedialhasan/tadabbur-backend/internal/middleware"
	"github.com/mehedialhasan/tadabbur-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	unreadOnly := c.QueryBool("unread", false)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	notifs, total, err := h.notificationService.List(actor.ID, unreadOnly, limit, offset)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifs,
		"total":         total,
		"limit":         limit,
		"offset":        offset,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(actor.ID, notifID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.notificationService.MarkAllRead(actor.ID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
