package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/banker/journal"
)

// Snapshot is a consistent copy of the whole ledger.
type Snapshot struct {
	Balance decimal.Decimal
	Loans   []Loan
	History []journal.Record
}

// Snapshot copies balance, loans and history under one read lock.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Snapshot{
		Balance: l.balance,
		Loans:   l.loansLocked(),
		History: append([]journal.Record(nil), l.history...),
	}
}

// Statement builds the exportable statement of the current state. Its
// lines are the in-memory history; callers printing a full statement
// replace them with the journal's lines.
func (s Snapshot) Statement() journal.Statement {
	st := journal.Statement{Balance: s.Balance}
	for _, loan := range s.Loans {
		st.Loans = append(st.Loans, journal.LoanSummary{
			Type:      loan.Type.String(),
			Total:     loan.Outstanding,
			EMI:       loan.EMI,
			Remaining: loan.RemainingMonths,
			Duration:  loan.DurationMonths,
		})
	}
	for _, r := range s.History {
		st.Lines = append(st.Lines, r.Line())
	}
	return st
}

// FormatStatement renders balance, every loan and the session history.
func (l *Ledger) FormatStatement() string {
	return l.Snapshot().Statement().String()
}
