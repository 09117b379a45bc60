package transfer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Relayer simulates the SmoothSend relayer SDK: a sponsor covers the network
// fee, so the sender spends only the transferred amount. The latency stands
// in for broadcast and confirmation time.
type Relayer struct {
	latency time.Duration
	logger  *slog.Logger
}

// NewRelayer returns a simulated relayer with the given settlement latency.
func NewRelayer(latency time.Duration, logger *slog.Logger) *Relayer {
	return &Relayer{latency: latency, logger: logger}
}

// Transfer implements Service.
func (r *Relayer) Transfer(ctx context.Context, recipient string, amount decimal.Decimal, token string) (*Receipt, error) {
	r.logger.Info("initiating gasless transfer",
		"recipient", recipient, "amount", amount, "token", token)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.latency):
	}

	if !strings.HasPrefix(recipient, "0x") {
		return nil, &ValidationError{Reason: "invalid recipient address"}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Reason: "amount must be greater than 0"}
	}

	return &Receipt{
		SettlementRef: newSettlementRef(),
		FeeSaved:      decimal.NewFromFloat(0.0025),
		Timestamp:     time.Now().UTC(),
	}, nil
}

func newSettlementRef() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}
