// Package transfer drives gasless (sponsored-fee) transfers: an external
// relayer settles the payment, then the coordinator reconciles the result
// back into the ledger.
package transfer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the relayer's confirmation of a settled transfer.
type Receipt struct {
	SettlementRef string          `json:"settlement_ref"`
	FeeSaved      decimal.Decimal `json:"fee_saved"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ValidationError is the relayer rejecting the request outright (malformed
// recipient, non-positive amount). The caller may retry with corrected input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Service is the external transfer rail. Calls may be slow and carry no
// internal timeout; the passed context is the only bound.
type Service interface {
	Transfer(ctx context.Context, recipient string, amount decimal.Decimal, token string) (*Receipt, error)
}
