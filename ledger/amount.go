package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a user-entered currency amount. A leading "$" is
// allowed. Anything unparsable or not strictly positive is ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// ParseMonths reads a loan term. Anything unparsable or not strictly
// positive is ErrInvalidDuration.
func ParseMonths(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return n, nil
}

// Money renders an amount to cents.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
