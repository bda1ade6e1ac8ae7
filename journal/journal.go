// Package journal is the durable, append-only transaction log. The ledger
// appends one record per operation; statements read every line back.
package journal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the timestamp format of a rendered log line.
const TimeLayout = "2006-01-02 15:04:05"

var (
	// ErrWrite marks a failed append. The ledger treats it as a warning.
	ErrWrite = errors.New("journal: write failed")

	// ErrNoStatement is returned when the log to read back does not exist.
	ErrNoStatement = errors.New("journal: statement not found")
)

// Kind classifies a record.
type Kind string

const (
	KindDeposit        Kind = "deposit"
	KindWithdraw       Kind = "withdraw"
	KindWithdrawFailed Kind = "withdraw_failed"
	KindLoan           Kind = "loan"
	KindEMI            Kind = "emi"
	KindEMIFailed      Kind = "emi_failed"
)

// Record is one transaction as it appears in the log.
type Record struct {
	ID      string
	Time    time.Time
	Kind    Kind
	Loan    string // empty for account operations
	Amount  decimal.Decimal
	Message string
}

// Line renders the record the way it is written to the text log:
//
//	[2024-01-02 15:04:05] Deposited: $500.00
func (r Record) Line() string {
	return "[" + r.Time.Format(TimeLayout) + "] " + r.Message
}

// Journal is implemented by every log backend.
type Journal interface {
	// Append stores r durably before returning.
	Append(r Record) error
	// Lines returns every stored record rendered with Line, oldest first.
	Lines() ([]string, error)
	Close() error
}
