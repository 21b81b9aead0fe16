package ledger

import (
	"testing"

	"donasi/payment"

	"github.com/stretchr/testify/assert"
)

func TestFeeForMethod(t *testing.T) {
	tests := []struct {
		name   string
		method string
		gross  int64
		want   int64
	}{
		{"qris percentage", "qris", 100000, 700},
		{"gopay percentage", "gopay", 50000, 350},
		{"bank transfer above threshold", "bank_transfer", 100000, 4000},
		{"bank transfer below threshold", "bank_transfer", 9999, 0},
		{"bank transfer at threshold", "bank_transfer", 10000, 4000},
		{"credit card percentage", "credit_card", 100000, 2900},
		{"convenience store flat", "indomaret", 50000, 2500},
		{"case insensitive", "QRIS", 100000, 700},
		{"prefixed variant falls back to substring", "bank_transfer_bca", 100000, 4000},
		{"overlapping methods resolve to the longest match", "bca_credit_card", 100000, 2900},
		{"unknown method uses default rate", "dana", 100000, 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeeForMethod(tt.method, tt.gross))
		})
	}
}

func TestCalculateDeductionPrefersExplicitFee(t *testing.T) {
	d := CalculateDeduction(payment.Notification{
		GrossAmount:    "100000",
		TransactionFee: "1500",
		PaymentType:    "qris",
	})

	assert.Equal(t, int64(1500), d.Final)
	assert.Equal(t, int64(98500), d.Net())
}

func TestCalculateDeductionUsesSettlementDifference(t *testing.T) {
	d := CalculateDeduction(payment.Notification{
		GrossAmount:     "100000",
		SettlementGross: "97000",
		PaymentType:     "qris",
	})

	assert.Equal(t, int64(3000), d.Final)
	assert.Equal(t, int64(97000), d.Net())
}

func TestCalculateDeductionFallsBackToFeeTable(t *testing.T) {
	d := CalculateDeduction(payment.Notification{
		GrossAmount: "100000",
		PaymentType: "bank_transfer",
	})

	assert.Equal(t, int64(4000), d.Final)
	assert.Equal(t, int64(96000), d.Net())
}

func TestCalculateDeductionFlooredAtZero(t *testing.T) {
	// A settlement gross above the gross would yield a negative deduction
	d := CalculateDeduction(payment.Notification{
		GrossAmount:     "100000",
		SettlementGross: "101000",
		PaymentType:     "qris",
	})

	assert.Equal(t, int64(0), d.Final)
	assert.Equal(t, int64(100000), d.Net())
}

func TestCalculateDeductionParsesDecimalStrings(t *testing.T) {
	d := CalculateDeduction(payment.Notification{
		GrossAmount: "100000.00",
		PaymentType: "credit_card",
	})

	assert.Equal(t, int64(100000), d.Gross)
	assert.Equal(t, int64(2900), d.Final)
}
