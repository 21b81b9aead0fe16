package donationController

import (
	"encoding/json"
	"log"

	"donasi/ledger"
	"donasi/middleware"
	"donasi/models"
	"donasi/payment"
	"donasi/utils"
	donationValidator "donasi/validators/donation"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the public donation flow and the gateway callback.
type Controller struct {
	Ledger   *ledger.Service
	Payments *payment.Client
}

func NewController(service *ledger.Service, payments *payment.Client) *Controller {
	return &Controller{Ledger: service, Payments: payments}
}

// CreateDonation creates a pending gateway transaction and returns the
// hosted-checkout token. Nothing is written to the ledger here; the ledger
// only changes when the gateway's callback confirms settlement.
func (ctl *Controller) CreateDonation(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDonation").(*donationValidator.CreateDonationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid donation", nil)
	}

	donaturName := reqData.DonaturName
	if donaturName == "" {
		donaturName = models.AnonymousDonaturName
	}
	phoneNumber := utils.NormalizePhone(reqData.PhoneNumber)

	orderID := payment.GenerateOrderID()
	params := payment.NewTransactionParams(
		orderID, donaturName, phoneNumber, reqData.DonaturMessage, reqData.Amount,
	)

	transaction, err := ctl.Payments.CreateTransaction(params)
	if err != nil {
		log.Printf("Error creating donation transaction %s: %v", orderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Error creating donation", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Donation Created", fiber.Map{
		"token":    transaction.Token,
		"redirect": transaction.RedirectURL,
	})
}

// HandleNotification ingests the asynchronous gateway callback.
// It always answers 200 for statuses that need no write (not yet settled,
// duplicate delivery) so the gateway stops retrying, and 500 on persistence
// failures so it retries.
func (ctl *Controller) HandleNotification(c *fiber.Ctx) error {
	rawBody := c.Body()

	var notification payment.Notification
	if err := json.Unmarshal(rawBody, &notification); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid notification payload", nil)
	}

	result, err := ctl.Ledger.HandleCallback(notification, rawBody)
	if err != nil {
		log.Printf("Error saving donation %s: %v", notification.OrderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Error saving donation", nil)
	}

	message := "Transaksi belum berhasil, tidak disimpan"
	if result.Duplicate {
		message = "Transaksi sudah pernah disimpan"
	} else if result.Saved {
		message = "Data transaksi berhasil disimpan"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, message, result)
}

// GetDonations returns the paginated donation list, newest first
func (ctl *Controller) GetDonations(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	donations, total, err := ctl.Ledger.Donations(page, limit)
	if err != nil {
		log.Printf("Error fetching donations: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to retrieve donations", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Donations retrieved", fiber.Map{
		"donations":  donations,
		"pagination": middleware.NewPagination(total, page, limit),
	})
}

// GetTopDonations returns the five largest donations
func (ctl *Controller) GetTopDonations(c *fiber.Ctx) error {
	donations, err := ctl.Ledger.TopDonations(5)
	if err != nil {
		log.Printf("Error fetching top donations: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Error retrieving top donations", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Top donations retrieved", donations)
}
