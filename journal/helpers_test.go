package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

func sampleRecords() []Record {
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return []Record{
		{
			ID:      "01HMZ0000000000000000000A1",
			Time:    t0,
			Kind:    KindDeposit,
			Amount:  decimal.RequireFromString("500"),
			Message: "Deposited: $500.00",
		},
		{
			ID:      "01HMZ0000000000000000000A2",
			Time:    t0.Add(time.Minute),
			Kind:    KindLoan,
			Loan:    "Home",
			Amount:  decimal.RequireFromString("2400"),
			Message: "Loan Approved (Home): $2400.00 | EMI: $100.00 for 24 months",
		},
		{
			ID:      "01HMZ0000000000000000000A3",
			Time:    t0.Add(2 * time.Minute),
			Kind:    KindEMI,
			Loan:    "Home",
			Amount:  decimal.RequireFromString("100"),
			Message: "EMI Paid for Home: $100.00 | Remaining: 23 months",
		},
	}
}

func sampleLines() []string {
	recs := sampleRecords()
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Line()
	}
	return out
}
