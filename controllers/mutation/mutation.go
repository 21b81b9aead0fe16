package mutationController

import (
	"errors"
	"log"

	"donasi/ledger"
	"donasi/middleware"
	mutationValidator "donasi/validators/mutation"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the mutation ledger over HTTP.
type Controller struct {
	Ledger *ledger.Service
}

func NewController(service *ledger.Service) *Controller {
	return &Controller{Ledger: service}
}

// GetMutations returns the paginated mutation list, newest first
func (ctl *Controller) GetMutations(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	mutations, total, err := ctl.Ledger.Mutations(page, limit)
	if err != nil {
		log.Printf("Error fetching mutations: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to retrieve mutations", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Mutations retrieved", fiber.Map{
		"mutations":  mutations,
		"pagination": middleware.NewPagination(total, page, limit),
	})
}

// GetSummary returns the balance figures, optionally for one ?month=YYYY-MM
func (ctl *Controller) GetSummary(c *fiber.Ctx) error {
	month := c.Query("month")

	summary, err := ctl.Ledger.Summary(month)
	if err != nil {
		var validationErr *ledger.ValidationError
		if errors.As(err, &validationErr) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, validationErr.Error(), nil)
		}
		log.Printf("Error generating summary: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to generate summary", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Summary retrieved", summary)
}

// CreatePayout opens a withdrawal request
func (ctl *Controller) CreatePayout(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPayout").(*mutationValidator.PayoutRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	mutation, err := ctl.Ledger.RequestPayout(reqData.Amount, reqData.Description)
	if err != nil {
		return payoutErrorResponse(c, err, "Failed to create payout")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Payout created successfully", mutation)
}

// ApprovePayout completes a pending withdrawal
func (ctl *Controller) ApprovePayout(c *fiber.Ctx) error {
	mutationID, ok := c.Locals("payoutId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "ID mutation tidak valid", nil)
	}

	mutation, err := ctl.Ledger.ApprovePayout(mutationID)
	if err != nil {
		return payoutErrorResponse(c, err, "Failed to approve payout")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Payout approved successfully", mutation)
}

// payoutErrorResponse maps ledger errors onto HTTP statuses.
func payoutErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *ledger.ValidationError
	var conflictErr *ledger.ConflictError
	var fundsErr *ledger.InsufficientFundsError
	var notFoundErr *ledger.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, validationErr.Error(), nil)
	case errors.As(err, &conflictErr):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, conflictErr.Error(), nil)
	case errors.As(err, &fundsErr):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, fundsErr.Error(), nil)
	case errors.As(err, &notFoundErr):
		return middleware.JsonResponse(c, fiber.StatusNotFound, notFoundErr.Error(), nil)
	default:
		log.Printf("%s: %v", fallback, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, fallback, nil)
	}
}
