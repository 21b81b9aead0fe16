package newsRoutes

import (
	newsController "donasi/controllers/news"
	"donasi/middleware"
	newsValidator "donasi/validators/news"

	"github.com/gofiber/fiber/v2"
)

func SetupNewsRoutes(app *fiber.App, ctl *newsController.Controller) {
	newsGroup := app.Group("/news")

	// Public routes
	newsGroup.Get("/", ctl.GetNews)
	newsGroup.Get("/:id", ctl.GetNewsByID)

	// Admin routes
	newsGroup.Post("/", middleware.JWTMiddleware, newsValidator.Create(), ctl.CreateNews)
	newsGroup.Patch("/:id", middleware.JWTMiddleware, newsValidator.Update(), ctl.UpdateNews)
	newsGroup.Delete("/:id", middleware.JWTMiddleware, ctl.DeleteNews)
}
