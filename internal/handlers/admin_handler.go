package handlers

import (
	"strconv"

	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/middleware"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"
	"github.com/mehedialhasan/tadabbur-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler exposes user management. Routes are mounted behind
// RoleRequired(manager); the finer-grained promotion rules live in the
// roles package and are enforced by UserService.
type AdminHandler struct {
	userService *services.UserService
}

func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	search := c.Query("search", "")
	roleFilter := roles.Role(c.Query("role", ""))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	users, total, err := h.userService.List(search, roleFilter, limit, offset)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	requested, err := roles.Parse(req.Role)
	if err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.userService.SetRole(actor, targetID, requested)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetActive(actor, targetID, req.IsActive)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}
