package newsValidator

import (
	"donasi/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateNewsRequest is the decoded news creation body.
type CreateNewsRequest struct {
	NewsName        string `json:"newsName" validate:"required"`
	NewsDescription string `json:"newsDescription" validate:"required"`
	NewsImage       string `json:"newsImage"`
}

// UpdateNewsRequest is the decoded partial news update body.
type UpdateNewsRequest struct {
	NewsName        string `json:"newsName"`
	NewsDescription string `json:"newsDescription"`
	NewsImage       string `json:"newsImage"`
}

// Create validates a news creation request
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateNewsRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "NewsName":
					errors["newsName"] = "News title is required!"
				case "NewsDescription":
					errors["newsDescription"] = "News description is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNews", reqData)
		return c.Next()
	}
}

// Update validates a partial news update request
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateNewsRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if reqData.NewsName == "" && reqData.NewsDescription == "" && reqData.NewsImage == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"body": "At least one field must be provided!",
			})
		}

		c.Locals("validatedNewsUpdate", reqData)
		return c.Next()
	}
}
