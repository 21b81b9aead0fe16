package ledger

import (
	"fmt"
)

// ValidationError reports bad input detected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError reports that another payout is already in flight.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// InsufficientFundsError reports a payout amount exceeding the balance that
// backs it. Available distinguishes "no funds" from "funds not yet aged".
type InsufficientFundsError struct {
	Amount    int64
	Available int64
	Reason    string
}

func (e *InsufficientFundsError) Error() string {
	return e.Reason
}

// NotFoundError reports a missing mutation or a payout not in pending state.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}
