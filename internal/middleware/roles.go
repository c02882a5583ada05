package middleware

import (
	"strings"

	"github.com/mehedialhasan/tadabbur-backend/internal/config"
	"github.com/mehedialhasan/tadabbur-backend/internal/dto"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const actorKey = "actor"

// RoleRequired gates a route behind a minimum role. The actor's role comes
// from the database (never the token, which may be stale after a role
// change); the config admin email list and shared admin token are honored
// as a bootstrap path for the admin floor.
func RoleRequired(db *gorm.DB, cfg *config.Config, min roles.Role) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			// Bootstrap path for operators without an account yet.
			c.Locals(actorKey, &models.User{Role: roles.Admin})
			return c.Next()
		}

		userID, err := CurrentUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Account is deactivated",
			})
		}

		if !roles.AtLeast(user.Role, min) {
			if contains(adminEmails, user.Email) {
				// Config-listed admins act with admin authority even
				// before their DB role is promoted.
				user.Role = roles.Admin
				c.Locals(actorKey, &user)
				return c.Next()
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient permission",
			})
		}

		c.Locals(actorKey, &user)
		return c.Next()
	}
}

// Actor returns the user loaded by RoleRequired, if any.
func Actor(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(actorKey).(*models.User)
	return user, ok
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
