// Package ledger owns the savings balance and the loan book of a single
// account and enforces the rules for deposits, withdrawals, loans and EMI
// repayments. Every operation produces a journal.Record.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rustyeddy/banker/journal"
	"github.com/rustyeddy/banker/logging"
	"github.com/rustyeddy/banker/metrics"
	"github.com/rustyeddy/banker/pkg/id"
)

// Ledger is safe for concurrent use. Mutations are serialized on one lock;
// reads share it and always see a consistent state.
type Ledger struct {
	mu      sync.RWMutex
	balance decimal.Decimal
	types   []LoanType
	loans   map[LoanType]*Loan
	history []journal.Record

	journal journal.Journal
	log     *logging.Logger
	metrics metrics.Collector
	now     func() time.Time
}

// Receipt describes the outcome of a mutation. It is filled in whenever a
// record was produced, including for rejected withdrawals and EMI payments.
type Receipt struct {
	Record  journal.Record
	Balance decimal.Decimal
	Loan    *Loan // copy of the affected loan, nil for account operations

	// LogErr is set when the record could not be made durable. The state
	// change stands regardless.
	LogErr error
}

type Option func(*Ledger)

// WithLoanTypes sets the enabled loan categories. Default MultiLoanTypes.
func WithLoanTypes(types ...LoanType) Option {
	return func(l *Ledger) { l.types = append([]LoanType(nil), types...) }
}

func WithLogger(log *logging.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

func WithMetrics(m metrics.Collector) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New returns a ledger holding opening and a zeroed loan per enabled type.
// j may be nil, in which case records are kept in memory only.
func New(opening decimal.Decimal, j journal.Journal, opts ...Option) *Ledger {
	l := &Ledger{
		balance: opening,
		types:   MultiLoanTypes,
		journal: j,
		log:     logging.NewNoOpLogger(),
		metrics: metrics.NoOpCollector{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("ledger")

	l.loans = make(map[LoanType]*Loan, len(l.types))
	for _, t := range l.types {
		l.loans[t] = &Loan{Type: t}
		l.metrics.SetOutstanding(t.String(), 0)
	}
	l.metrics.SetBalance(l.balance.InexactFloat64())
	return l
}

// Deposit credits amount to the balance.
func (l *Ledger) Deposit(amount decimal.Decimal) (Receipt, error) {
	if !amount.IsPositive() {
		l.metrics.RecordOperation("deposit", metrics.OutcomeInvalid)
		return Receipt{}, fmt.Errorf("%w %s", ErrInvalidAmount, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance = l.balance.Add(amount)
	r := l.postLocked(journal.KindDeposit, nil, amount, "Deposited: $"+Money(amount))
	l.finishLocked("deposit", metrics.OutcomeOK, nil)
	return r, nil
}

// Withdraw debits amount if the balance covers it. Otherwise nothing
// changes, a failure record is posted and ErrInsufficientFunds returned.
func (l *Ledger) Withdraw(amount decimal.Decimal) (Receipt, error) {
	if !amount.IsPositive() {
		l.metrics.RecordOperation("withdraw", metrics.OutcomeInvalid)
		return Receipt{}, fmt.Errorf("%w %s", ErrInvalidAmount, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance.LessThan(amount) {
		r := l.postLocked(journal.KindWithdrawFailed, nil, amount, "Withdrawal failed: Insufficient funds")
		l.finishLocked("withdraw", metrics.OutcomeRejected, nil)
		return r, ErrInsufficientFunds
	}

	l.balance = l.balance.Sub(amount)
	r := l.postLocked(journal.KindWithdraw, nil, amount, "Withdrawn: $"+Money(amount))
	l.finishLocked("withdraw", metrics.OutcomeOK, nil)
	return r, nil
}

// RequestLoan disburses amount into the balance and schedules months
// installments of amount/months rounded to cents, the last one settling the
// rounding difference. A request on a type that still has
// installments due replaces its schedule; the new principal is added to
// what is outstanding.
func (l *Ledger) RequestLoan(t LoanType, amount decimal.Decimal, months int) (Receipt, error) {
	if !amount.IsPositive() {
		l.metrics.RecordOperation("loan", metrics.OutcomeInvalid)
		return Receipt{}, fmt.Errorf("%w %s", ErrInvalidAmount, amount)
	}
	if months <= 0 {
		l.metrics.RecordOperation("loan", metrics.OutcomeInvalid)
		return Receipt{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, months)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	loan, err := l.loanLocked(t)
	if err != nil {
		l.metrics.RecordOperation("loan", metrics.OutcomeInvalid)
		return Receipt{}, err
	}

	n := decimal.NewFromInt(int64(months))
	emi := amount.Div(n).Round(2)
	loan.Outstanding = loan.Outstanding.Add(amount)
	loan.EMI = emi
	loan.FinalEMI = amount.Sub(emi.Mul(n.Sub(decimal.NewFromInt(1))))
	loan.RemainingMonths = months
	loan.DurationMonths = months
	l.balance = l.balance.Add(amount)

	msg := fmt.Sprintf("Loan Approved (%s): $%s | EMI: $%s for %d months", t, Money(amount), Money(emi), months)
	r := l.postLocked(journal.KindLoan, loan, amount, msg)
	l.finishLocked("loan", metrics.OutcomeOK, loan)
	return r, nil
}

// PayEMI pays one installment of t from the balance. When no installment is
// due or the balance does not cover it, nothing changes, a failure record is
// posted and ErrEMIRejected returned.
func (l *Ledger) PayEMI(t LoanType) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	loan, err := l.loanLocked(t)
	if err != nil {
		l.metrics.RecordOperation("emi", metrics.OutcomeInvalid)
		return Receipt{}, err
	}

	emi := loan.due()
	if !loan.Active() || l.balance.LessThan(emi) {
		msg := fmt.Sprintf("EMI Failed for %s: Insufficient funds or no EMI left", t)
		r := l.postLocked(journal.KindEMIFailed, loan, emi, msg)
		l.finishLocked("emi", metrics.OutcomeRejected, loan)
		return r, fmt.Errorf("%w for %s", ErrEMIRejected, t)
	}

	l.balance = l.balance.Sub(emi)
	loan.Outstanding = loan.Outstanding.Sub(emi)
	loan.RemainingMonths--
	if loan.RemainingMonths == 0 {
		loan.EMI = decimal.Zero
		loan.FinalEMI = decimal.Zero
	}

	msg := fmt.Sprintf("EMI Paid for %s: $%s | Remaining: %d months", t, Money(emi), loan.RemainingMonths)
	r := l.postLocked(journal.KindEMI, loan, emi, msg)
	l.finishLocked("emi", metrics.OutcomeOK, loan)
	return r, nil
}

// Balance returns the current savings balance.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance
}

// Loan returns a copy of the state of t.
func (l *Ledger) Loan(t LoanType) (Loan, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	loan, err := l.loanLocked(t)
	if err != nil {
		return Loan{}, err
	}
	return *loan, nil
}

// Loans returns a copy of every enabled loan in declaration order.
func (l *Ledger) Loans() []Loan {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loansLocked()
}

// LoanTypes returns the enabled categories.
func (l *Ledger) LoanTypes() []LoanType {
	return append([]LoanType(nil), l.types...)
}

// History returns the records posted by this ledger, oldest first.
func (l *Ledger) History() []journal.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]journal.Record(nil), l.history...)
}

func (l *Ledger) loanLocked(t LoanType) (*Loan, error) {
	loan, ok := l.loans[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLoanType, t)
	}
	return loan, nil
}

func (l *Ledger) loansLocked() []Loan {
	out := make([]Loan, 0, len(l.types))
	for _, t := range l.types {
		out = append(out, *l.loans[t])
	}
	return out
}

// postLocked records the operation in memory and in the journal. A journal
// failure is logged and handed back on the receipt; it never undoes the
// state change that was already applied.
func (l *Ledger) postLocked(kind journal.Kind, loan *Loan, amount decimal.Decimal, msg string) Receipt {
	now := l.now()
	rec := journal.Record{
		ID:      id.NewAt(now),
		Time:    now,
		Kind:    kind,
		Amount:  amount,
		Message: msg,
	}
	if loan != nil {
		rec.Loan = loan.Type.String()
	}
	l.history = append(l.history, rec)

	r := Receipt{Record: rec, Balance: l.balance}
	if loan != nil {
		cp := *loan
		r.Loan = &cp
	}

	if l.journal != nil {
		if err := l.journal.Append(rec); err != nil {
			l.metrics.RecordJournalFailure()
			l.log.Warn("transaction not written to log",
				zap.String("id", rec.ID),
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			r.LogErr = err
		}
	}
	return r
}

func (l *Ledger) finishLocked(op string, outcome metrics.Outcome, loan *Loan) {
	l.metrics.RecordOperation(op, outcome)
	l.metrics.SetBalance(l.balance.InexactFloat64())
	if loan != nil {
		l.metrics.SetOutstanding(loan.Type.String(), loan.Outstanding.InexactFloat64())
	}
	l.log.Debug("operation",
		zap.String("op", op),
		zap.String("outcome", string(outcome)),
		zap.String("balance", Money(l.balance)),
	)
}
