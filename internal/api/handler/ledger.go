package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/domain"
	"moneypulse/internal/util"
)

// ListAccounts handles GET /accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"accounts":      h.ledger.Accounts(),
		"total_balance": h.ledger.TotalBalance(),
	})
}

// CreateAccountRequest represents the request body for creating an account.
type CreateAccountRequest struct {
	Name     string             `json:"name"`
	Kind     domain.AccountKind `json:"kind"`
	Balance  decimal.Decimal    `json:"balance"`
	Currency string             `json:"currency"`
	Address  string             `json:"address"`
}

// CreateAccount handles POST /accounts.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	account, err := h.ledger.CreateAccount(r.Context(), req.Name, req.Kind, req.Balance, req.Currency, req.Address)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, account)
}

// ListTransactions handles GET /transactions. The collection is returned in
// storage order, most recent insertion first.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": h.ledger.Transactions(),
	})
}

// AppendTransactionRequest represents the request body for appending a
// transaction.
type AppendTransactionRequest struct {
	Amount     decimal.Decimal        `json:"amount"`
	Type       domain.TransactionType `json:"type"`
	CategoryID string                 `json:"category_id"`
	AccountID  string                 `json:"account_id"`
	Note       string                 `json:"note"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// AppendTransaction handles POST /transactions.
func (h *Handler) AppendTransaction(w http.ResponseWriter, r *http.Request) {
	var req AppendTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	id, err := h.ledger.Append(r.Context(), req.Amount, req.Type, req.CategoryID, req.AccountID, req.Note, occurredAt)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"transaction_id": id,
	})
}
