// Package metrics defines what the ledger reports about itself.
package metrics

// Outcome labels a finished ledger operation.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected" // business rule refused it
	OutcomeInvalid  Outcome = "invalid"  // bad input, nothing recorded
)

// Collector receives ledger events. Implementations must be safe for
// concurrent use; the ledger calls them while holding its own lock.
type Collector interface {
	RecordOperation(op string, outcome Outcome)
	SetBalance(balance float64)
	SetOutstanding(loan string, amount float64)
	RecordJournalFailure()
}

// NoOpCollector drops everything.
type NoOpCollector struct{}

func (NoOpCollector) RecordOperation(string, Outcome) {}
func (NoOpCollector) SetBalance(float64)              {}
func (NoOpCollector) SetOutstanding(string, float64)  {}
func (NoOpCollector) RecordJournalFailure()           {}

var _ Collector = NoOpCollector{}
