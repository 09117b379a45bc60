package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrUnknownAccount      = errors.New("account not found")
	ErrNoWalletAccount     = errors.New("no chain wallet account configured")
	ErrInsufficientBalance = errors.New("amount exceeds wallet balance")
	ErrLastCategoryOfType  = errors.New("cannot delete the last category of its type")
	ErrTransferValidation  = errors.New("transfer rejected by relayer")
	ErrTransferInFlight    = errors.New("transfer attempt already in flight")
	ErrAdvisorUnavailable  = errors.New("financial advisor is unavailable")
)

// IsError reports whether err matches target in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
