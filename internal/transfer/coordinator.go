package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/domain"
	"moneypulse/internal/util"
)

// State identifies where a transfer attempt is in its lifecycle.
type State int

const (
	StateInput State = iota
	StateProcessing
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateProcessing:
		return "PROCESSING"
	case StateSuccess:
		return "SUCCESS"
	default:
		return "INPUT"
	}
}

// Ledger is the slice of the ledger store the coordinator needs.
type Ledger interface {
	WalletAccount() (domain.Account, bool)
	AppendGasless(ctx context.Context, amount decimal.Decimal, note, externalRef string) (string, error)
}

// Coordinator drives a single transfer attempt through
// Input → Processing → Success. Any failure returns it to Input with the
// message retained for display, and the ledger is untouched. The ledger is
// appended at most once, and only after the relayer has confirmed
// settlement — never optimistically on entering Processing.
//
// A coordinator serves one attempt and is discarded afterwards. There is no
// cancel operation: abandoning a coordinator mid-Processing leaves the
// outstanding call unobserved and its eventual outcome is dropped.
type Coordinator struct {
	ledger       Ledger
	svc          Service
	token        string
	successDelay time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	state   State
	lastErr string
	receipt *Receipt

	done chan struct{}
}

// NewCoordinator builds a coordinator for one transfer attempt. successDelay
// postpones the ledger append after success so a confirmation screen can
// linger; it carries no correctness weight and zero is a valid value.
func NewCoordinator(ledger Ledger, svc Service, token string, successDelay time.Duration, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		ledger:       ledger,
		svc:          svc,
		token:        token,
		successDelay: successDelay,
		logger:       logger,
		state:        StateInput,
		done:         make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the failure message from the most recent rejected
// attempt, empty when there is none.
func (c *Coordinator) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Receipt returns the relayer confirmation once the coordinator has reached
// Success, nil before that.
func (c *Coordinator) Receipt() *Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipt
}

// Done is closed once the successful transfer has been recorded in the
// ledger.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Send validates the input against the ledger's live wallet balance, invokes
// the relayer, and on confirmation schedules the ledger append. Validation
// failures never reach the relayer.
func (c *Coordinator) Send(ctx context.Context, recipient string, amount decimal.Decimal) (*Receipt, error) {
	c.mu.Lock()
	if c.state != StateInput {
		c.mu.Unlock()
		return nil, util.ErrTransferInFlight
	}
	if strings.TrimSpace(recipient) == "" {
		c.lastErr = "recipient address is required"
		c.mu.Unlock()
		return nil, util.ErrInvalidInput
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		c.lastErr = "amount must be greater than zero"
		c.mu.Unlock()
		return nil, util.ErrInvalidAmount
	}
	wallet, ok := c.ledger.WalletAccount()
	if !ok {
		c.lastErr = "no chain wallet account configured"
		c.mu.Unlock()
		return nil, util.ErrNoWalletAccount
	}
	if amount.GreaterThan(wallet.Balance) {
		c.lastErr = "amount exceeds wallet balance"
		c.mu.Unlock()
		return nil, util.ErrInsufficientBalance
	}
	c.state = StateProcessing
	c.mu.Unlock()

	receipt, err := c.svc.Transfer(ctx, recipient, amount, c.token)
	if err != nil {
		c.mu.Lock()
		c.state = StateInput
		c.lastErr = err.Error()
		c.mu.Unlock()

		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("%w: %s", util.ErrTransferValidation, verr.Reason)
		}
		return nil, err
	}

	c.mu.Lock()
	c.state = StateSuccess
	c.lastErr = ""
	c.receipt = receipt
	c.mu.Unlock()

	// The append is decoupled from the state transition itself so the
	// success screen can stay visible before navigating away.
	appendCtx := context.WithoutCancel(ctx)
	note := fmt.Sprintf("Sent to %s", shortAddress(recipient))
	time.AfterFunc(c.successDelay, func() {
		defer close(c.done)
		if _, err := c.ledger.AppendGasless(appendCtx, amount, note, receipt.SettlementRef); err != nil {
			c.logger.Error("failed to record settled gasless transfer",
				"error", err, "settlement_ref", receipt.SettlementRef)
		}
	})
	return receipt, nil
}

func shortAddress(addr string) string {
	if len(addr) <= 6 {
		return addr
	}
	return addr[:6] + "..."
}
