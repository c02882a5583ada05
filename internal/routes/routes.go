package routes

import (
	"time"

	"github.com/mehedialhasan/tadabbur-backend/internal/config"
	"github.com/mehedialhasan/tadabbur-backend/internal/handlers"
	"github.com/mehedialhasan/tadabbur-backend/internal/middleware"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	contentHandler *handlers.ContentHandler,
	feedHandler *handlers.FeedHandler,
	approvalHandler *handlers.ApprovalHandler,
	adminHandler *handlers.AdminHandler,
	reportHandler *handlers.ReportHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth routes are public and get a stricter limiter: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	jwt := middleware.JWTProtected(cfg)
	// member loads the actor from the DB and refuses deactivated accounts.
	member := middleware.RoleRequired(db, cfg, roles.User)

	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Get("/auth/profile", jwt, authHandler.GetProfile)
	api.Put("/auth/profile", jwt, authHandler.UpdateProfile)
	api.Put("/auth/change-password", jwt, authHandler.ChangePassword)
	api.Delete("/auth/account", jwt, authHandler.DeleteAccount)

	// Content. The public listing needs no token; everything else does.
	api.Get("/items", contentHandler.ListPublic)
	items := api.Group("/items", jwt, member)
	items.Get("/mine", contentHandler.ListMine)
	items.Post("/", contentHandler.Create)
	items.Get("/:id", contentHandler.Get)
	items.Put("/:id", contentHandler.Update)
	items.Delete("/:id", contentHandler.Delete)
	items.Post("/:id/like", contentHandler.Like)
	items.Delete("/:id/like", contentHandler.Unlike)
	items.Get("/:id/likes", contentHandler.LikeStatus)
	items.Post("/:id/resubmit", contentHandler.Resubmit)

	// Reconciled feed projections
	feedGroup := api.Group("/feed", jwt, member)
	feedGroup.Get("/", feedHandler.GetFeed)
	feedGroup.Post("/:id/like", feedHandler.ToggleLike)

	// Any member may file a report
	api.Post("/reports", jwt, member, reportHandler.CreateReport)

	// Notifications
	notifs := api.Group("/notifications", jwt, member)
	notifs.Get("/", notificationHandler.List)
	notifs.Put("/:id/read", notificationHandler.MarkRead)
	notifs.Put("/read-all", notificationHandler.MarkAllRead)

	// Review panel (scholar and above)
	review := api.Group("/review", jwt, middleware.RoleRequired(db, cfg, roles.Scholar))
	review.Get("/queue", approvalHandler.Queue)
	review.Get("/stats", approvalHandler.Stats)
	review.Put("/items/:id/approve", approvalHandler.Approve)
	review.Put("/items/:id/reject", approvalHandler.Reject)
	review.Put("/items/:id/verify", approvalHandler.SetVerified)

	// Admin panel (manager and above; role-grant limits enforced per actor)
	admin := api.Group("/admin", jwt, middleware.RoleRequired(db, cfg, roles.Manager))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/role", adminHandler.UpdateRole)
	admin.Put("/users/:id/status", adminHandler.UpdateStatus)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/reports", reportHandler.ListReports)
	admin.Put("/reports/:id", reportHandler.ActionReport)
	admin.Get("/reports/stats", reportHandler.ReportStats)
}
