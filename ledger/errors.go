package ledger

import "errors"

// Errors returned by ledger operations. All of them are recoverable and
// meant to be shown to the account holder.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDuration   = errors.New("duration must be more than 0 months")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEMIRejected       = errors.New("insufficient balance or no EMI left")
	ErrUnknownLoanType   = errors.New("unknown loan type")

	ErrDispatcherClosed = errors.New("dispatcher: closed")
	ErrQueueFull        = errors.New("dispatcher: queue full, try again")
)
