package donationRoutes

import (
	donationController "donasi/controllers/donation"
	"donasi/middleware"
	donationValidator "donasi/validators/donation"

	"github.com/gofiber/fiber/v2"
)

func SetupDonationRoutes(app *fiber.App, ctl *donationController.Controller) {
	donationGroup := app.Group("/donations")

	// Public routes
	donationGroup.Post("/", donationValidator.Create(), ctl.CreateDonation)
	donationGroup.Post("/notification", ctl.HandleNotification)
	donationGroup.Get("/top", ctl.GetTopDonations)

	// Admin routes
	donationGroup.Get("/", middleware.JWTMiddleware, ctl.GetDonations)
}
