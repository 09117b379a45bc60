package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a financial transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction is a single immutable ledger entry. Entries are created only
// through the ledger store and are never modified or removed afterwards.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	CategoryID  string          `json:"category_id"`
	AccountID   string          `json:"account_id"`
	ToAccountID *string         `json:"to_account_id,omitempty"` // Transfer target, unused by current flows
	Note        string          `json:"note"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Gasless     bool            `json:"gasless,omitempty"`      // Set when produced by the transfer coordinator
	ExternalRef string          `json:"external_ref,omitempty"` // Settlement reference from the relayer
}

// NewTransactionID returns a time-ordered id. Ids sort in creation order, so
// they double as a tiebreaker between entries sharing an occurrence timestamp.
func NewTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
