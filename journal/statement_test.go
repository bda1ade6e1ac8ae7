package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatement() Statement {
	return Statement{
		Loans: []LoanSummary{
			{Type: "Home", Total: decimal.RequireFromString("2300"), EMI: decimal.RequireFromString("100"), Remaining: 23, Duration: 24},
			{Type: "Car"},
		},
		Balance: decimal.RequireFromString("3800"),
		Lines:   []string{"[2024-01-02 03:04:05] Deposited: $500.00", "[2024-01-02 03:05:05] Withdrawn: $1.00"},
	}
}

func TestStatementRender(t *testing.T) {
	t.Parallel()

	want := `=== BANK STATEMENT ===

--- Home Loan ---
Total Loan: $2300.00
EMI: $100.00
Remaining Months: 23
Term: 24 months

--- Car Loan ---
Total Loan: $0.00
EMI: $0.00
Remaining Months: 0
Term: 0 months

Total Balance: $3800.00

Transaction Log:
[2024-01-02 03:04:05] Deposited: $500.00
[2024-01-02 03:05:05] Withdrawn: $1.00
`
	assert.Equal(t, want, sampleStatement().String())
}

func TestWriteStatement(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bank_statement.txt")
	require.NoError(t, WriteStatement(path, sampleStatement()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleStatement().String(), string(data))
}

func TestWriteStatementBadPath(t *testing.T) {
	t.Parallel()

	err := WriteStatement(filepath.Join(t.TempDir(), "missing", "s.txt"), sampleStatement())
	assert.Error(t, err)
}
