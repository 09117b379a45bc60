// Package ledger owns the authoritative collections of accounts and
// transactions. It is the only component permitted to mutate account
// balances or append transactions.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/domain"
	"moneypulse/internal/util"
	"moneypulse/pkg/kvstore"
)

// Store is the single source of truth for accounts and transactions and the
// only writer of account balances. The transaction collection is append-only
// and kept most-recent-first; callers needing chronological order must sort
// explicitly.
//
// All mutations funnel through one mutex, so the append order observed by
// readers is exactly the order operations were invoked.
type Store struct {
	mu           sync.Mutex
	accounts     []domain.Account
	transactions []domain.Transaction
	kv           kvstore.Store
	logger       *slog.Logger
}

// NewStore loads the persisted collections, falling back to the seed
// accounts when nothing usable is stored.
func NewStore(ctx context.Context, kv kvstore.Store, logger *slog.Logger) *Store {
	s := &Store{kv: kv, logger: logger}

	var accounts []domain.Account
	if kv.Load(ctx, kvstore.KeyAccounts, &accounts) && len(accounts) > 0 {
		s.accounts = accounts
	} else {
		s.accounts = domain.SeedAccounts()
		logger.Info("seeded initial accounts", "count", len(s.accounts))
	}

	var transactions []domain.Transaction
	if kv.Load(ctx, kvstore.KeyTransactions, &transactions) {
		s.transactions = transactions
	}

	return s
}

// Append records a new transaction and atomically adjusts the referenced
// account's balance: income adds the amount, expense subtracts it. Transfer
// entries are record-keeping only; no dual-entry logic exists in this
// ledger, so they move no balance.
//
// The category reference is deliberately not validated: the ledger is
// append-only and categories can be deleted later anyway, so readers already
// have to cope with unresolved ids.
func (s *Store) Append(ctx context.Context, amount decimal.Decimal, txType domain.TransactionType, categoryID, accountID, note string, occurredAt time.Time) (string, error) {
	if !txType.Valid() {
		return "", util.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(ctx, amount, txType, categoryID, accountID, note, occurredAt, false, "")
}

// AppendGasless records a settled gasless transfer against the chain wallet
// account. The entry is always an expense, flagged gasless and carrying the
// relayer's settlement reference.
func (s *Store) AppendGasless(ctx context.Context, amount decimal.Decimal, note, externalRef string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet := s.findWallet()
	if wallet == nil {
		return "", util.ErrNoWalletAccount
	}
	return s.append(ctx, amount, domain.TransactionTypeExpense, "", wallet.ID, note, time.Now().UTC(), true, externalRef)
}

// append does the shared validate-mutate-persist work. Callers hold s.mu.
func (s *Store) append(ctx context.Context, amount decimal.Decimal, txType domain.TransactionType, categoryID, accountID, note string, occurredAt time.Time, gasless bool, externalRef string) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", util.ErrInvalidAmount
	}
	idx := s.accountIndex(accountID)
	if idx < 0 {
		return "", util.ErrUnknownAccount
	}

	tx := domain.Transaction{
		ID:          domain.NewTransactionID(),
		Amount:      amount,
		Type:        txType,
		CategoryID:  categoryID,
		AccountID:   accountID,
		Note:        note,
		OccurredAt:  occurredAt,
		Gasless:     gasless,
		ExternalRef: externalRef,
	}
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)

	switch txType {
	case domain.TransactionTypeIncome:
		s.accounts[idx].Balance = s.accounts[idx].Balance.Add(amount)
	case domain.TransactionTypeExpense:
		s.accounts[idx].Balance = s.accounts[idx].Balance.Sub(amount)
	}

	s.persist(ctx)
	return tx.ID, nil
}

// CreateAccount adds a new account. Accounts are never deleted.
func (s *Store) CreateAccount(ctx context.Context, name string, kind domain.AccountKind, balance decimal.Decimal, currency, address string) (domain.Account, error) {
	if strings.TrimSpace(name) == "" || currency == "" || !kind.Valid() {
		return domain.Account{}, util.ErrInvalidInput
	}
	acc := domain.NewAccount(name, kind, balance, currency, address)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, *acc)
	s.persist(ctx)
	return *acc, nil
}

// Accounts returns a copy of the account collection.
func (s *Store) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Transactions returns a copy of the transaction collection, most recent
// insertion first.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// AccountByID returns the account with the given id.
func (s *Store) AccountByID(id string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.accountIndex(id)
	if idx < 0 {
		return domain.Account{}, util.ErrUnknownAccount
	}
	return s.accounts[idx], nil
}

// WalletAccount returns the chain wallet account, if one exists.
func (s *Store) WalletAccount() (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.findWallet(); w != nil {
		return *w, true
	}
	return domain.Account{}, false
}

// TotalBalance sums the balances of all accounts.
func (s *Store) TotalBalance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, acc := range s.accounts {
		total = total.Add(acc.Balance)
	}
	return total
}

func (s *Store) accountIndex(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findWallet() *domain.Account {
	for i := range s.accounts {
		if s.accounts[i].Kind == domain.AccountKindChainWallet {
			return &s.accounts[i]
		}
	}
	return nil
}

// persist snapshots both collections to the key-value store. No
// acknowledgement is awaited; failures are logged by the store
// implementation. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	accounts := make([]domain.Account, len(s.accounts))
	copy(accounts, s.accounts)
	transactions := make([]domain.Transaction, len(s.transactions))
	copy(transactions, s.transactions)

	bg := context.WithoutCancel(ctx)
	s.kv.Save(bg, kvstore.KeyAccounts, accounts)
	s.kv.Save(bg, kvstore.KeyTransactions, transactions)
}
