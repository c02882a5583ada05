package handlers

import (
	"log/slog"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// respondErr maps the apperr taxonomy onto HTTP statuses. Unknown errors
// stay opaque to the client and are logged server-side.
func respondErr(c *fiber.Ctx, err error) error {
	var status int
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		status = fiber.StatusForbidden
	case apperr.Unauthenticated:
		status = fiber.StatusUnauthorized
	case apperr.NotFound:
		status = fiber.StatusNotFound
	case apperr.InvalidArgument:
		status = fiber.StatusBadRequest
	case apperr.Conflict:
		status = fiber.StatusConflict
	case apperr.Unavailable:
		status = fiber.StatusServiceUnavailable
	default:
		status = fiber.StatusInternalServerError
	}

	if status >= 500 {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   true,
		Message: apperr.Message(err),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
