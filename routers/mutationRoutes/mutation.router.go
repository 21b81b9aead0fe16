package mutationRoutes

import (
	mutationController "donasi/controllers/mutation"
	"donasi/middleware"
	mutationValidator "donasi/validators/mutation"

	"github.com/gofiber/fiber/v2"
)

func SetupMutationRoutes(app *fiber.App, ctl *mutationController.Controller) {
	mutationGroup := app.Group("/mutations", middleware.JWTMiddleware)

	mutationGroup.Get("/", ctl.GetMutations)
	mutationGroup.Get("/summary", ctl.GetSummary)
	mutationGroup.Post("/payout", mutationValidator.Payout(), ctl.CreatePayout)
	mutationGroup.Put("/payout/:id/approve", mutationValidator.PayoutID(), ctl.ApprovePayout)
}
