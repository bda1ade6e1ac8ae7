package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/banker/config"
	"github.com/rustyeddy/banker/journal"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// writeConfig saves a config whose every file lives in dir.
func writeConfig(t *testing.T, dir string, mutate func(*config.Config)) string {
	t.Helper()

	cfg := config.Default()
	cfg.Journal.LogFile = filepath.Join(dir, "transaction_log.txt")
	cfg.Statement.Path = filepath.Join(dir, "bank_statement.txt")
	cfg.Logging.File = filepath.Join(dir, "banker.log")
	if mutate != nil {
		mutate(cfg)
	}

	path := filepath.Join(dir, "banker.yaml")
	require.NoError(t, cfg.SaveToFile(path))
	return path
}

const script = "deposit 500\nloan home 2400 24\npay home\nwithdraw 5000\nquit\n"

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "banker version "+version+"\n", out)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banker.yaml")

	out, err := execute(t, "", "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration: "+path)

	out, err = execute(t, "", "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid: "+path)
	assert.Contains(t, out, "Account: $1000.00 USD")
	assert.Contains(t, out, "Journal: file")
}

func TestConfigValidateRequiresFile(t *testing.T) {
	_, err := execute(t, "", "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"file" not set`)
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"account":{"currency":"USD"},"loans":{"variant":"all"}}`), 0644))

	_, err := execute(t, "", "config", "validate", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "", "shell", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestBadLogLevelFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, nil)

	_, err := execute(t, "", "statement", "show", "-c", cfgPath, "--log-level", "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-level")
}

func TestShellSession(t *testing.T) {
	dir := t.TempDir()
	textfile := filepath.Join(dir, "banker.prom")
	cfgPath := writeConfig(t, dir, func(c *config.Config) {
		c.Metrics.Textfile = textfile
	})

	out, err := execute(t, script, "shell", "-c", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "banker> ", "no prompt without a terminal")
	assert.Contains(t, out, "Deposited: $500.00\nBalance: $1500.00\n")
	assert.Contains(t, out, "Loan Approved (Home): $2400.00 | EMI: $100.00 for 24 months\n")
	assert.Contains(t, out, "EMI Paid for Home: $100.00 | Remaining: 23 months\n")
	assert.Contains(t, out, "Withdrawal failed: Insufficient funds\n")

	data, err := os.ReadFile(filepath.Join(dir, "transaction_log.txt"))
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "\n"))

	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "banker_balance 3800")
	assert.Contains(t, string(prom), `banker_operations_total{op="withdraw",outcome="rejected"} 1`)
}

func TestShellLogsCarryCurrency(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, func(c *config.Config) {
		c.Account.Currency = "EUR"
	})

	_, err := execute(t, "quit\n", "shell", "-c", cfgPath, "--log-level", "info")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "banker.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ledger ready")
	assert.Contains(t, string(data), "EUR")
}

func TestStatementShowAndPrint(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, nil)

	_, err := execute(t, script, "shell", "-c", cfgPath)
	require.NoError(t, err)

	out, err := execute(t, "", "statement", "show", "-c", cfgPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "=== Bank Statement ===", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "] Deposited: $500.00"))

	outPath := filepath.Join(dir, "printed.txt")
	out, err = execute(t, "", "statement", "print", "-c", cfgPath, "-o", outPath)
	require.NoError(t, err)
	assert.Equal(t, "Statement saved to '"+outPath+"'\n", out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "--- Personal Loan ---\n")
	assert.Contains(t, text, "Total Balance: $1000.00\n")
	assert.Contains(t, text, "EMI Paid for Home: $100.00 | Remaining: 23 months\n")
}

func TestStatementPrintDefaultPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, nil)

	out, err := execute(t, "", "statement", "print", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "bank_statement.txt"))

	data, err := os.ReadFile(filepath.Join(dir, "bank_statement.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "Transaction Log:\n"))
}

func TestJournalCommandsWithSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "banker.db")
	cfgPath := writeConfig(t, dir, func(c *config.Config) {
		c.Journal.Type = journal.TypeSQLite
		c.Journal.DBPath = dbPath
	})

	_, err := execute(t, script, "shell", "-c", cfgPath)
	require.NoError(t, err)

	out, err := execute(t, "", "journal", "list", "-c", cfgPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "deposit")
	assert.Contains(t, lines[0], "500.00")

	id := strings.Fields(lines[1])[0]
	out, err = execute(t, "", "journal", "record", id, "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ID:      "+id+"\n")
	assert.Contains(t, out, "Kind:    loan\n")
	assert.Contains(t, out, "Loan:    Home\n")
	assert.Contains(t, out, "Amount:  $2400.00\n")

	out, err = execute(t, "", "journal", "list", "--day", "1999-01-01", "-c", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "No records.\n", out)

	_, err = execute(t, "", "journal", "record", "missing", "-c", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `record "missing" not found`)
}

func TestJournalCommandsWithCSV(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, func(c *config.Config) {
		c.Journal.Type = journal.TypeCSV
		c.Journal.CSVFile = filepath.Join(dir, "banker.csv")
	})

	_, err := execute(t, script, "shell", "-c", cfgPath)
	require.NoError(t, err)

	out, err := execute(t, "", "journal", "list", "-c", cfgPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	_, err = execute(t, "", "journal", "list", "--day", "not-a-day", "-c", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestJournalCommandsNeedStructuredBackend(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, nil)

	_, err := execute(t, "", "journal", "list", "-c", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keeps plain lines")
}
