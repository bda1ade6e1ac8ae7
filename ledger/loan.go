package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LoanType names a loan category. The zero value is not a valid type.
type LoanType int

const (
	Personal LoanType = iota + 1
	Home
	Car
	// Standard is the single unnamed loan of a one-loan account.
	Standard
)

var loanNames = map[LoanType]string{
	Personal: "Personal",
	Home:     "Home",
	Car:      "Car",
	Standard: "Standard",
}

// MultiLoanTypes is the category set of a full account.
var MultiLoanTypes = []LoanType{Personal, Home, Car}

// SimpleLoanTypes is the category set of a one-loan account.
var SimpleLoanTypes = []LoanType{Standard}

func (t LoanType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("LoanType(%d)", int(t))
	}
	return loanNames[t]
}

// Valid reports whether t is one of the declared categories.
func (t LoanType) Valid() bool {
	_, ok := loanNames[t]
	return ok
}

// ParseLoanType accepts a category name in any case.
func ParseLoanType(s string) (LoanType, error) {
	s = strings.TrimSpace(s)
	for t, name := range loanNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLoanType, s)
}

// Loan is the repayment state of one loan category.
type Loan struct {
	Type        LoanType
	Outstanding decimal.Decimal // principal still owed
	EMI         decimal.Decimal // installment per payment in cents, 0 when retired
	// FinalEMI is the last installment. It absorbs the cents lost when
	// rounding EMI so the schedule sums to its principal.
	FinalEMI        decimal.Decimal
	RemainingMonths int
	DurationMonths  int // term of the most recent request
}

// due is the installment the next payment collects.
func (l Loan) due() decimal.Decimal {
	if l.RemainingMonths == 1 {
		return l.FinalEMI
	}
	return l.EMI
}

// Active reports whether installments are still due.
func (l Loan) Active() bool {
	return l.RemainingMonths > 0
}
