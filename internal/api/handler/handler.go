package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"moneypulse/internal/advisor"
	"moneypulse/internal/category"
	"moneypulse/internal/ledger"
	"moneypulse/internal/settings"
	"moneypulse/internal/transfer"
	"moneypulse/internal/util"
)

// DefaultTimeout bounds request handling in the router.
const DefaultTimeout = 60 * time.Second

// Handler serves the HTTP surface over the core components.
type Handler struct {
	ledger       *ledger.Store
	categories   *category.Registry
	settings     *settings.Store
	transferSvc  transfer.Service
	advisor      *advisor.Advisor
	token        string
	successDelay time.Duration
	logger       *slog.Logger
}

// New creates a new Handler.
func New(
	ledgerStore *ledger.Store,
	categories *category.Registry,
	settingsStore *settings.Store,
	transferSvc transfer.Service,
	adv *advisor.Advisor,
	token string,
	successDelay time.Duration,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		ledger:       ledgerStore,
		categories:   categories,
		settings:     settingsStore,
		transferSvc:  transferSvc,
		advisor:      adv,
		token:        token,
		successDelay: successDelay,
		logger:       logger,
	}
}

// Helper function to send JSON responses.
func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrTransferInFlight):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrUnknownAccount),
		util.IsError(err, util.ErrNoWalletAccount):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrInsufficientBalance):
		statusCode = http.StatusPaymentRequired
		message = err.Error()
	case util.IsError(err, util.ErrLastCategoryOfType):
		statusCode = http.StatusConflict
		message = err.Error()
	case util.IsError(err, util.ErrTransferValidation):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()
	case util.IsError(err, util.ErrAdvisorUnavailable):
		statusCode = http.StatusServiceUnavailable
		message = err.Error()
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}
