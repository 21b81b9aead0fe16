package authRoutes

import (
	authController "donasi/controllers/auth"
	"donasi/middleware"
	authValidator "donasi/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, ctl *authController.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidator.Login(), ctl.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, ctl.GetProfile)
	authGroup.Patch("/profile", middleware.JWTMiddleware, authValidator.UpdateProfile(), ctl.UpdateProfile)
	authGroup.Patch("/password", middleware.JWTMiddleware, authValidator.UpdatePassword(), ctl.UpdatePassword)
}
