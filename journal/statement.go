package journal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/shopspring/decimal"
)

// LoanSummary is one loan block of a statement.
type LoanSummary struct {
	Type      string
	Total     decimal.Decimal
	EMI       decimal.Decimal
	Remaining int
	Duration  int
}

// Statement is a point-in-time export of balances plus transaction history.
type Statement struct {
	Loans   []LoanSummary
	Balance decimal.Decimal
	Lines   []string
}

var statementFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

var statementTmpl = template.Must(template.New("statement").Funcs(statementFuncs).Parse(StatementTemplate))

const StatementTemplate = `=== BANK STATEMENT ===
{{range .Loans}}
--- {{.Type}} Loan ---
Total Loan: ${{money .Total}}
EMI: ${{money .EMI}}
Remaining Months: {{.Remaining}}
Term: {{.Duration}} months
{{end}}
Total Balance: ${{money .Balance}}

Transaction Log:
{{range .Lines}}{{.}}
{{end}}`

// Render writes the statement text to w.
func (s Statement) Render(w io.Writer) error {
	return statementTmpl.Execute(w, s)
}

// String renders the statement, for display.
func (s Statement) String() string {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return fmt.Sprintf("statement: %v", err)
	}
	return buf.String()
}

// WriteStatement replaces path with the rendered statement.
func WriteStatement(path string, s Statement) error {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return fmt.Errorf("render statement: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write statement: %w", err)
	}
	return nil
}
