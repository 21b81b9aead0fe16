package mutationValidator

import (
	"strconv"
	"strings"

	"donasi/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PayoutRequest is the decoded payout request body.
type PayoutRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
}

// Payout validates a withdrawal request
func Payout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PayoutRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		reqData.Description = strings.TrimSpace(reqData.Description)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Amount":
					errors["amount"] = "Jumlah penarikan harus lebih dari 0"
				case "Description":
					errors["description"] = "Keterangan penarikan wajib diisi"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayout", reqData)
		return c.Next()
	}
}

// PayoutID validates the payout id path parameter
func PayoutID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "ID mutation tidak valid", nil)
		}

		c.Locals("payoutId", uint(id))
		return c.Next()
	}
}
