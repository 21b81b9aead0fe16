package authValidator

import (
	"donasi/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// LoginRequest is the decoded login body. Identifier is a username or a
// phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the decoded profile update body.
type UpdateProfileRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdatePasswordRequest is the decoded password change body.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// Login validates a login request
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Identifier":
					errors["identifier"] = "Username or phone number is required!"
				case "Password":
					errors["password"] = "Password is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// UpdateProfile validates a profile update request
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if reqData.Username == "" && reqData.PhoneNumber == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"body": "At least one field must be provided!",
			})
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// UpdatePassword validates a password change request
func UpdatePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePasswordRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CurrentPassword":
					errors["currentPassword"] = "Current password is required!"
				case "NewPassword":
					errors["newPassword"] = "New password must be at least 8 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPassword", reqData)
		return c.Next()
	}
}
