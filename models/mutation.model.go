package models

import (
	"gorm.io/gorm"
)

// MutationType defines the direction of a ledger mutation
type MutationType string

const (
	MutationTypeIncome  MutationType = "Income"
	MutationTypeOutcome MutationType = "Outcome"
)

// MutationStatus defines the status of a ledger mutation
type MutationStatus string

const (
	MutationStatusPending   MutationStatus = "pending"
	MutationStatusCompleted MutationStatus = "completed"
)

// Mutation is a single ledger entry. Income entries are created completed;
// Outcome entries (payouts) start pending and are completed on approval.
type Mutation struct {
	gorm.Model
	MutationType        MutationType   `gorm:"type:varchar(20);not null;index" json:"mutationType"`
	MutationAmount      int64          `gorm:"not null" json:"mutationAmount"`
	MutationDescription string         `gorm:"type:text" json:"mutationDescription"`
	MutationStatus      MutationStatus `gorm:"type:varchar(20);default:'completed'" json:"mutationStatus"`

	// OrderID carries the payment-gateway order id for Income entries created
	// from a callback. Unique so a redelivered callback can never insert twice.
	OrderID *string `gorm:"type:varchar(100);uniqueIndex" json:"orderId,omitempty"`
}

func (Mutation) TableName() string {
	return "mutations"
}
