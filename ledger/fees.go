package ledger

import (
	"sort"
	"strconv"
	"strings"

	"donasi/payment"
)

// PaymentMethod is a recognized gateway payment channel.
type PaymentMethod string

const (
	MethodQRIS         PaymentMethod = "qris"
	MethodGopay        PaymentMethod = "gopay"
	MethodShopeePay    PaymentMethod = "shopeepay"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodPermata      PaymentMethod = "permata"
	MethodBCA          PaymentMethod = "bca"
	MethodBNI          PaymentMethod = "bni"
	MethodBRI          PaymentMethod = "bri"
	MethodMandiri      PaymentMethod = "mandiri"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodCStore       PaymentMethod = "cstore"
	MethodIndomaret    PaymentMethod = "indomaret"
	MethodAlfamart     PaymentMethod = "alfamart"
)

// feeRule is either a percentage of the gross amount or a flat fee.
// Flat bank-transfer fees only apply from minGross upward; below that the
// gateway absorbs the fee.
type feeRule struct {
	percent  float64
	flat     int64
	minGross int64
}

// defaultFeePercent applies to any unrecognized payment method.
const defaultFeePercent = 0.007

const bankTransferMinGross = 10000

var feeTable = map[PaymentMethod]feeRule{
	MethodQRIS:         {percent: 0.007},
	MethodGopay:        {percent: 0.007},
	MethodShopeePay:    {percent: 0.007},
	MethodBankTransfer: {flat: 4000, minGross: bankTransferMinGross},
	MethodPermata:      {flat: 4000, minGross: bankTransferMinGross},
	MethodBCA:          {flat: 4000, minGross: bankTransferMinGross},
	MethodBNI:          {flat: 4000, minGross: bankTransferMinGross},
	MethodBRI:          {flat: 4000, minGross: bankTransferMinGross},
	MethodMandiri:      {flat: 4000, minGross: bankTransferMinGross},
	MethodCreditCard:   {percent: 0.029},
	MethodCStore:       {flat: 2500},
	MethodIndomaret:    {flat: 2500},
	MethodAlfamart:     {flat: 2500},
}

// fallbackOrder lists the fee-table keys longest first, so a method name
// containing two known methods always resolves to the more specific one.
var fallbackOrder = func() []PaymentMethod {
	keys := make([]PaymentMethod, 0, len(feeTable))
	for method := range feeTable {
		keys = append(keys, method)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

func (r feeRule) apply(gross int64) int64 {
	if r.flat > 0 {
		if gross < r.minGross {
			return 0
		}
		return r.flat
	}
	return int64(float64(gross) * r.percent)
}

// FeeForMethod returns the estimated gateway fee for a payment method.
// Exact matches against the fee table win; a substring fallback covers
// prefixed variants the gateway occasionally reports (e.g.
// "bank_transfer_bca"). Unknown methods fall back to the default rate.
func FeeForMethod(method string, gross int64) int64 {
	normalized := PaymentMethod(strings.ToLower(method))

	if rule, ok := feeTable[normalized]; ok {
		return rule.apply(gross)
	}

	for _, known := range fallbackOrder {
		if strings.Contains(string(normalized), string(known)) {
			return feeTable[known].apply(gross)
		}
	}

	return int64(float64(gross) * defaultFeePercent)
}

// Deduction is the gateway-fee breakdown computed from a callback.
type Deduction struct {
	Gross           int64
	SettlementGross int64
	TransactionFee  int64
	Calculated      int64
	Final           int64
}

// Net is the amount that actually lands in the ledger.
func (d Deduction) Net() int64 {
	return d.Gross - d.Final
}

// CalculateDeduction derives the fee to subtract from a donation's gross
// amount. Preference order: an explicit transaction_fee from the gateway,
// then the gross/settlement difference, then the per-method fee table.
func CalculateDeduction(n payment.Notification) Deduction {
	gross := parseAmount(n.GrossAmount)
	settlement := gross
	if n.SettlementGross != "" {
		settlement = parseAmount(n.SettlementGross)
	}
	fee := parseAmount(n.TransactionFee)

	var calculated int64
	switch {
	case n.TransactionFee != "" && fee > 0:
		calculated = fee
	case n.SettlementGross != "" && n.SettlementGross != n.GrossAmount:
		calculated = gross - settlement
	default:
		calculated = FeeForMethod(n.PaymentType, gross)
	}

	final := calculated
	if final < 0 {
		final = 0
	}

	return Deduction{
		Gross:           gross,
		SettlementGross: settlement,
		TransactionFee:  fee,
		Calculated:      calculated,
		Final:           final,
	}
}

// parseAmount reads a gateway decimal string ("100000.00") as whole rupiah.
func parseAmount(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}
