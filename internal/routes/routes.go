package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/onelab-dev/community-backend/internal/config"
	"github.com/onelab-dev/community-backend/internal/handlers"
	"github.com/onelab-dev/community-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	collectionHandler *handlers.CollectionHandler,
	newsletterHandler *handlers.NewsletterHandler,
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

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.TestLogin)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	api.Get("/auth/me", middleware.JWTProtected(cfg), middleware.Authenticated(db), authHandler.Me)

	// Public newsletter pages (published only; detail counts a view)
	api.Get("/newsletters", newsletterHandler.ListPublished)
	api.Get("/newsletters/:id", newsletterHandler.GetPublished)

	// Personal collection (JWT + resolved user required)
	user := api.Group("/categories", middleware.JWTProtected(cfg), middleware.Authenticated(db))
	user.Get("/", collectionHandler.ListCategories)
	user.Post("/", collectionHandler.CreateCategory)
	user.Put("/:id", collectionHandler.UpdateCategory)
	user.Delete("/:id", collectionHandler.DeleteCategory)
	// Reorder before the :itemId routes so "reorder" never parses as an item ID.
	user.Put("/:id/items/reorder", collectionHandler.ReorderItems)
	user.Post("/:id/items", collectionHandler.CreateItem)
	user.Put("/:id/items/:itemId", collectionHandler.UpdateItem)
	user.Delete("/:id/items/:itemId", collectionHandler.DeleteItem)

	// Newsletter management (admin only)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.Authenticated(db), middleware.AdminRequired(cfg))
	admin.Get("/newsletters", newsletterHandler.List)
	admin.Post("/newsletters", newsletterHandler.Create)
	admin.Get("/newsletters/:id", newsletterHandler.Get)
	admin.Put("/newsletters/:id", newsletterHandler.Update)
	admin.Patch("/newsletters/:id/publish", newsletterHandler.TogglePublish)
	admin.Delete("/newsletters/:id", newsletterHandler.Delete)
}
