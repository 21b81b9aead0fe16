package donationValidator

import (
	"strconv"

	"donasi/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateDonationRequest is the decoded donation form.
type CreateDonationRequest struct {
	Amount         int64
	DonaturName    string
	PhoneNumber    string
	DonaturMessage string
}

// Create validates the public donation form (multipart or urlencoded).
// Donor name, phone and message are optional; placeholders are applied
// further down the pipeline.
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		amountRaw := c.FormValue("donationAmount")

		errors := make(map[string]string)

		amount, err := strconv.ParseInt(amountRaw, 10, 64)
		if amountRaw == "" || err != nil || amount <= 0 {
			errors["donationAmount"] = "Donation amount must be greater than 0"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDonation", &CreateDonationRequest{
			Amount:         amount,
			DonaturName:    c.FormValue("donaturName"),
			PhoneNumber:    c.FormValue("phoneNumber"),
			DonaturMessage: c.FormValue("donaturMessage"),
		})
		return c.Next()
	}
}
