package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"moneypulse/internal/transfer"
	"moneypulse/internal/util"
)

// GaslessTransferRequest represents the request body for a gasless transfer.
type GaslessTransferRequest struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
}

// GaslessTransfer handles POST /transfers/gasless. A fresh coordinator
// serves each attempt and is discarded afterwards; the ledger append happens
// once the relayer confirms, possibly after the configured success delay, so
// the response reports the receipt rather than the new balance.
func (h *Handler) GaslessTransfer(w http.ResponseWriter, r *http.Request) {
	var req GaslessTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	coordinator := transfer.NewCoordinator(h.ledger, h.transferSvc, h.token, h.successDelay, h.logger)
	receipt, err := coordinator.Send(r.Context(), req.Recipient, req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Transfer sent",
		"settlement_ref": receipt.SettlementRef,
		"fee_saved":      receipt.FeeSaved,
		"timestamp":      receipt.Timestamp,
	})
}
