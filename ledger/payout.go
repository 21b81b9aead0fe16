package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"donasi/models"
	"donasi/notify"

	"gorm.io/gorm"
)

// RequestPayout opens a withdrawal: it validates the amount against the
// current and withdrawable balances and inserts a pending Outcome mutation.
//
// The pending-payout check, the balance check and the insert all run inside
// one transaction with the pending row locked, so two concurrent requests
// can never both pass validation. The partial unique index on pending
// Outcome rows backstops the check at the constraint level.
func (s *Service) RequestPayout(amount int64, description string) (*models.Mutation, error) {
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "Jumlah penarikan harus lebih dari 0"}
	}
	if strings.TrimSpace(description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "Keterangan penarikan wajib diisi"}
	}

	var created *models.Mutation
	err := s.store.Transaction(func(tx Store) error {
		pending, err := tx.PendingPayout()
		if err != nil {
			return err
		}
		if pending != nil {
			return &ConflictError{
				Reason: fmt.Sprintf("Masih ada penarikan yang menunggu persetujuan (ID %d)", pending.ID),
			}
		}

		entries, err := tx.AllMutations()
		if err != nil {
			return err
		}
		summary, err := Summarize(entries, time.Now(), "", s.cfg.HoldWindow)
		if err != nil {
			return err
		}

		if amount > summary.TotalBalance {
			return &InsufficientFundsError{
				Amount:    amount,
				Available: summary.TotalBalance,
				Reason:    fmt.Sprintf("Jumlah penarikan melebihi total saldo (%d)", summary.TotalBalance),
			}
		}
		if amount > summary.WithdrawableBalance {
			holdDays := int(s.cfg.HoldWindow.Hours() / 24)
			return &InsufficientFundsError{
				Amount:    amount,
				Available: summary.WithdrawableBalance,
				Reason: fmt.Sprintf(
					"Jumlah penarikan melebihi saldo yang dapat ditarik (%d): donasi baru dapat ditarik setelah mengendap %d hari",
					summary.WithdrawableBalance, holdDays,
				),
			}
		}

		mutation := &models.Mutation{
			MutationType:        models.MutationTypeOutcome,
			MutationAmount:      amount,
			MutationDescription: description,
			MutationStatus:      models.MutationStatusPending,
		}
		if err := tx.CreateMutation(mutation); err != nil {
			// Locking the pending row guards nothing while no pending row
			// exists, so two concurrent requests can both reach the insert.
			// The partial unique index rejects the loser; surface that as
			// the same conflict the application-level check reports.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &ConflictError{Reason: "Masih ada penarikan yang menunggu persetujuan"}
			}
			return err
		}
		created = mutation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ApprovePayout completes a pending payout. The notification afterwards is
// fire-and-forget: a failed send never rolls back the approval.
func (s *Service) ApprovePayout(mutationID uint) (*models.Mutation, error) {
	var approved *models.Mutation
	err := s.store.Transaction(func(tx Store) error {
		mutation, err := tx.MutationByID(mutationID)
		if err != nil {
			return err
		}
		if mutation == nil ||
			mutation.MutationType != models.MutationTypeOutcome ||
			mutation.MutationStatus != models.MutationStatusPending {
			return &NotFoundError{Reason: "Mutation tidak ditemukan"}
		}

		mutation.MutationStatus = models.MutationStatusCompleted
		if err := tx.SaveMutation(mutation); err != nil {
			return err
		}
		approved = mutation
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.notifyPayoutApproved(*approved)

	return approved, nil
}

func (s *Service) notifyPayoutApproved(mutation models.Mutation) {
	description := mutation.MutationDescription
	if description == "" {
		description = "-"
	}

	message := fmt.Sprintf(
		`<b>Permintaan Penarikan Dana</b>

📌 <b>Diminta oleh:</b> Admin
💰 <b>Jumlah:</b> Rp %d
🏦 <b>Metode:</b> %s
📄 <b>Catatan:</b> %s

Silakan admin melakukan pengecekan dan memproses payout sesuai prosedur.`,
		mutation.MutationAmount, mutation.MutationType, description,
	)

	s.notifier.Notify(notify.ChannelTelegram, s.cfg.TelegramChatID, message)

	if s.cfg.AdminEmail != "" {
		s.notifier.Notify(notify.ChannelEmail, s.cfg.AdminEmail, fmt.Sprintf(
			`Permintaan Penarikan Dana
Penarikan sebesar Rp %d telah disetujui.
Catatan: %s

Silakan admin melakukan pengecekan dan memproses payout sesuai prosedur.`,
			mutation.MutationAmount, description,
		))
	}
}
