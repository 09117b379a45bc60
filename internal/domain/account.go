package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind defines the kind of an account.
type AccountKind string

const (
	AccountKindCash        AccountKind = "CASH"
	AccountKindBank        AccountKind = "BANK"
	AccountKindCard        AccountKind = "CARD"
	AccountKindChainWallet AccountKind = "CHAIN_WALLET"
)

// Valid reports whether k is one of the known account kinds.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountKindCash, AccountKindBank, AccountKindCard, AccountKindChainWallet:
		return true
	}
	return false
}

// Account holds a running balance. The balance is only ever mutated by the
// ledger store when a transaction is appended, so it always equals the seed
// balance plus the signed effects of every transaction referencing it.
type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Kind     AccountKind     `json:"kind"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Address  string          `json:"address,omitempty"` // Chain wallets only
}

// NewAccount creates a new Account instance with a fresh id.
func NewAccount(name string, kind AccountKind, balance decimal.Decimal, currency, address string) *Account {
	return &Account{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     kind,
		Balance:  balance,
		Currency: currency,
		Address:  address,
	}
}
