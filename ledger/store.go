package ledger

import (
	"errors"

	"donasi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence boundary of the ledger. Read-then-write
// sequences run inside Transaction so concurrent requests cannot both pass
// their validation against a stale snapshot.
type Store interface {
	// Transaction runs fn against a transaction-scoped store. fn returning
	// an error rolls everything back.
	Transaction(fn func(tx Store) error) error

	Mutations(page, limit int) ([]models.Mutation, int64, error)
	AllMutations() ([]models.Mutation, error)
	CreateMutation(m *models.Mutation) error
	MutationByID(id uint) (*models.Mutation, error)
	SaveMutation(m *models.Mutation) error

	// PendingPayout returns the in-flight Outcome mutation, locking the row
	// inside a transaction, or nil when no payout is pending.
	PendingPayout() (*models.Mutation, error)

	// HasOrderID reports whether any mutation already carries the gateway
	// order id (the callback idempotency key).
	HasOrderID(orderID string) (bool, error)

	Donations(page, limit int) ([]models.Donation, int64, error)
	TopDonations(limit int) ([]models.Donation, error)
	CreateDonation(d *models.Donation) error
}

// GormStore implements Store on a GORM handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Mutations(page, limit int) ([]models.Mutation, int64, error) {
	var total int64
	if err := s.db.Model(&models.Mutation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var mutations []models.Mutation
	err := s.db.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&mutations).Error
	if err != nil {
		return nil, 0, err
	}
	return mutations, total, nil
}

func (s *GormStore) AllMutations() ([]models.Mutation, error) {
	var mutations []models.Mutation
	if err := s.db.Order("created_at DESC").Find(&mutations).Error; err != nil {
		return nil, err
	}
	return mutations, nil
}

func (s *GormStore) CreateMutation(m *models.Mutation) error {
	return s.db.Create(m).Error
}

func (s *GormStore) MutationByID(id uint) (*models.Mutation, error) {
	var mutation models.Mutation
	err := s.locked().First(&mutation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mutation, nil
}

func (s *GormStore) SaveMutation(m *models.Mutation) error {
	return s.db.Save(m).Error
}

func (s *GormStore) PendingPayout() (*models.Mutation, error) {
	var mutation models.Mutation
	err := s.locked().
		Where("mutation_type = ? AND mutation_status = ?",
			models.MutationTypeOutcome, models.MutationStatusPending).
		First(&mutation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mutation, nil
}

func (s *GormStore) HasOrderID(orderID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Mutation{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) Donations(page, limit int) ([]models.Donation, int64, error) {
	var total int64
	if err := s.db.Model(&models.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []models.Donation
	err := s.db.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

func (s *GormStore) TopDonations(limit int) ([]models.Donation, error) {
	var donations []models.Donation
	err := s.db.
		Order("CAST(donation_amount AS NUMERIC) DESC").
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (s *GormStore) CreateDonation(d *models.Donation) error {
	return s.db.Create(d).Error
}

// locked applies SELECT ... FOR UPDATE on dialects that support it.
// SQLite serializes writers on its own and rejects the clause.
func (s *GormStore) locked() *gorm.DB {
	if s.db.Dialector.Name() == "sqlite" {
		return s.db
	}
	return s.db.Clauses(clause.Locking{Strength: "UPDATE"})
}
