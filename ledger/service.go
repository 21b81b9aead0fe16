package ledger

import (
	"time"

	"donasi/models"
	"donasi/notify"
)

// Config carries the business parameters of the ledger service.
type Config struct {
	// HoldWindow is how long settled income stays non-withdrawable.
	HoldWindow time.Duration

	// AdminWhatsApp receives a WhatsApp message on every settled donation.
	AdminWhatsApp string

	// TelegramChatID receives payout-approval notifications.
	TelegramChatID string

	// AdminEmail receives a mail copy of every payout approval.
	AdminEmail string
}

// Service implements the mutation ledger: balance summaries, the payout
// workflow and reconciliation of payment-gateway callbacks.
type Service struct {
	store    Store
	notifier notify.Notifier
	cfg      Config
}

func NewService(store Store, notifier notify.Notifier, cfg Config) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Mutations returns one page of ledger entries, newest first.
func (s *Service) Mutations(page, limit int) ([]models.Mutation, int64, error) {
	return s.store.Mutations(page, limit)
}

// Donations returns one page of donation records, newest first.
func (s *Service) Donations(page, limit int) ([]models.Donation, int64, error) {
	return s.store.Donations(page, limit)
}

// TopDonations returns the largest donations by gross amount.
func (s *Service) TopDonations(limit int) ([]models.Donation, error) {
	return s.store.TopDonations(limit)
}

// Summary computes the balance figures, optionally restricted to a
// "YYYY-MM" calendar month.
func (s *Service) Summary(period string) (Summary, error) {
	entries, err := s.store.AllMutations()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries, time.Now(), period, s.cfg.HoldWindow)
}
