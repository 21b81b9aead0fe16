package ledger

import (
	"fmt"

	"donasi/models"
	"donasi/notify"
	"donasi/payment"

	"gorm.io/datatypes"
)

// CallbackResult echoes the provider's status fields back in the response,
// matching the gateway's retry contract.
type CallbackResult struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`

	Saved     bool `json:"-"`
	Duplicate bool `json:"-"`
}

// HandleCallback converts a gateway notification into ledger state, exactly
// once per order id.
//
// Non-successful statuses and redelivered callbacks are acknowledged without
// writing anything; the caller still answers 200 so the gateway stops
// retrying. A persistence failure is returned as an error so the gateway
// redelivers — the order-id idempotency check absorbs the retry.
func (s *Service) HandleCallback(n payment.Notification, rawBody []byte) (*CallbackResult, error) {
	result := &CallbackResult{
		OrderID:           n.OrderID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		StatusCode:        n.StatusCode,
		StatusMessage:     n.StatusMessage,
	}

	if !payment.IsSuccessful(n.TransactionStatus, n.FraudStatus) {
		return result, nil
	}

	deduction := CalculateDeduction(n)
	donation := extractDonation(n, deduction.Final)
	donation.OrderID = n.OrderID
	donation.RawCallback = datatypes.JSON(rawBody)

	orderID := n.OrderID
	income := &models.Mutation{
		MutationType:   models.MutationTypeIncome,
		MutationAmount: deduction.Net(),
		MutationDescription: fmt.Sprintf(
			"Donation from %s (%s) - Order ID: %s | Gross: %d, Deduction: %d, Net: %d",
			donation.DonaturName, donation.PhoneNumber, orderID,
			deduction.Gross, deduction.Final, deduction.Net(),
		),
		MutationStatus: models.MutationStatusCompleted,
		OrderID:        &orderID,
	}

	err := s.store.Transaction(func(tx Store) error {
		exists, err := tx.HasOrderID(n.OrderID)
		if err != nil {
			return err
		}
		if exists {
			result.Duplicate = true
			return nil
		}

		if err := tx.CreateDonation(donation); err != nil {
			return err
		}
		if err := tx.CreateMutation(income); err != nil {
			return err
		}
		result.Saved = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Saved {
		go s.notifyDonationSettled(*donation)
	}

	return result, nil
}

// extractDonation maps the callback's custom fields onto a donation record,
// substituting placeholders for anything the donor left empty.
func extractDonation(n payment.Notification, deduction int64) *models.Donation {
	donaturName := n.CustomField1
	if donaturName == "" {
		donaturName = models.AnonymousDonaturName
	}

	phoneNumber := n.CustomField2
	if (phoneNumber == "" || phoneNumber == models.EmptyFieldPlaceholder) &&
		n.CustomerDetails != nil && n.CustomerDetails.Phone != "" {
		phoneNumber = n.CustomerDetails.Phone
	}
	if phoneNumber == "" {
		phoneNumber = models.EmptyFieldPlaceholder
	}

	donaturMessage := n.CustomField3
	if donaturMessage == "" {
		donaturMessage = models.EmptyFieldPlaceholder
	}

	return &models.Donation{
		DonationAmount:    n.GrossAmount,
		DonationDeduction: deduction,
		DonationType:      n.PaymentType,
		DonaturName:       donaturName,
		PhoneNumber:       phoneNumber,
		DonaturMessage:    donaturMessage,
	}
}

func (s *Service) notifyDonationSettled(donation models.Donation) {
	if s.cfg.AdminWhatsApp != "" {
		s.notifier.Notify(notify.ChannelWhatsApp, s.cfg.AdminWhatsApp, fmt.Sprintf(
			"🕌 Donasi baru dari *%s* – Rp %s.\nSilakan admin meninjau.",
			donation.DonaturName, donation.DonationAmount,
		))
	}

	if donation.PhoneNumber != models.EmptyFieldPlaceholder {
		s.notifier.Notify(notify.ChannelWhatsApp, donation.PhoneNumber, fmt.Sprintf(
			"🕌 Terima kasih *%s* atas donasinya sebesar Rp %s.\nSemoga Allah membalas kebaikan Anda.",
			donation.DonaturName, donation.DonationAmount,
		))
	}
}
