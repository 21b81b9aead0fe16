package ledger

import (
	"fmt"
	"time"

	"donasi/models"

	"github.com/jinzhu/now"
)

// Summary is the balance sheet derived from the mutation ledger.
type Summary struct {
	TotalIncome         int64  `json:"income"`
	TotalOutcome        int64  `json:"spending"`
	TotalPending        int64  `json:"pending"`
	TotalBalance        int64  `json:"balance"`
	WithdrawableBalance int64  `json:"withdrawableBalance"`
	Period              string `json:"period"`
}

// Summarize computes the balance figures from a ledger snapshot.
//
// Only completed entries count toward income and outcome. Withdrawable
// income is further restricted to entries created at or before
// asOf−holdWindow: freshly settled donations stay on hold until the
// gateway has actually paid the money out. The result is floored at zero.
//
// When period is a non-empty "YYYY-MM" string, income, outcome and pending
// sums are restricted to that calendar month in local time. The hold-window
// filter still applies on top of the month filter.
func Summarize(entries []models.Mutation, asOf time.Time, period string, holdWindow time.Duration) (Summary, error) {
	summary := Summary{Period: "All time"}

	var monthStart, monthEnd time.Time
	if period != "" {
		parsed, err := time.ParseInLocation("2006-01", period, time.Local)
		if err != nil {
			return Summary{}, &ValidationError{Field: "month", Reason: "must be formatted as YYYY-MM"}
		}
		monthStart = now.New(parsed).BeginningOfMonth()
		monthEnd = now.New(parsed).EndOfMonth()
		summary.Period = fmt.Sprintf("Month: %s", period)
	}

	holdCutoff := asOf.Add(-holdWindow)
	var withdrawableIncome int64

	for _, entry := range entries {
		if period != "" && (entry.CreatedAt.Before(monthStart) || entry.CreatedAt.After(monthEnd)) {
			continue
		}

		if entry.MutationStatus == models.MutationStatusPending {
			summary.TotalPending += entry.MutationAmount
			continue
		}
		if entry.MutationStatus != models.MutationStatusCompleted {
			continue
		}

		switch entry.MutationType {
		case models.MutationTypeIncome:
			summary.TotalIncome += entry.MutationAmount
			if !entry.CreatedAt.After(holdCutoff) {
				withdrawableIncome += entry.MutationAmount
			}
		case models.MutationTypeOutcome:
			summary.TotalOutcome += entry.MutationAmount
		}
	}

	summary.TotalBalance = summary.TotalIncome - summary.TotalOutcome

	withdrawable := withdrawableIncome - summary.TotalOutcome
	if withdrawable < 0 {
		withdrawable = 0
	}
	summary.WithdrawableBalance = withdrawable

	return summary, nil
}
