package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Placeholder values used when a donor leaves the optional fields empty.
const (
	AnonymousDonaturName  = "Hamba Allah."
	EmptyFieldPlaceholder = "-"
)

// Donation records one settled donation. Amount is the gross amount as
// reported by the gateway (decimal string), Deduction the gateway fee.
type Donation struct {
	gorm.Model
	DonationAmount    string `gorm:"type:varchar(50);not null" json:"donationAmount"`
	DonationDeduction int64  `gorm:"not null;default:0" json:"donationDeduction"`
	DonationType      string `gorm:"type:varchar(50);not null" json:"donationType"`
	DonaturName       string `gorm:"type:varchar(255);default:'Hamba Allah.'" json:"donaturName"`
	PhoneNumber       string `gorm:"type:varchar(50);default:'-'" json:"phoneNumber"`
	DonaturMessage    string `gorm:"type:text" json:"donaturMessage"`

	OrderID     string         `gorm:"type:varchar(100);uniqueIndex" json:"orderId"`
	RawCallback datatypes.JSON `json:"-"` // full gateway payload, kept for audits
}

func (Donation) TableName() string {
	return "donations"
}
