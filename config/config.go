package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/banker/journal"
	"github.com/rustyeddy/banker/ledger"
	"github.com/rustyeddy/banker/logging"
)

// Config represents the complete banker configuration
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Loans      LoansConfig      `json:"loans" yaml:"loans"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Statement  StatementConfig  `json:"statement" yaml:"statement"`
	Dispatcher DispatcherConfig `json:"dispatcher" yaml:"dispatcher"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	Currency       string  `json:"currency" yaml:"currency"`
	OpeningBalance float64 `json:"opening_balance" yaml:"opening_balance"`
}

// Loan variants.
const (
	VariantMulti  = "multi"
	VariantSimple = "simple"
)

// LoansConfig selects the loan book.
type LoansConfig struct {
	Variant string `json:"variant" yaml:"variant"` // "multi" or "simple"
	// DefaultMonths is the fixed term of the simple variant.
	DefaultMonths int `json:"default_months" yaml:"default_months"`
}

// JournalConfig contains transaction log parameters
type JournalConfig struct {
	Type      string        `json:"type" yaml:"type"` // "file", "sqlite", "csv" or "redis"
	LogFile   string        `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	DBPath    string        `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	CSVFile   string        `json:"csv_file,omitempty" yaml:"csv_file,omitempty"`
	RedisAddr string        `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisKey  string        `json:"redis_key,omitempty" yaml:"redis_key,omitempty"`
	Breaker   BreakerConfig `json:"breaker" yaml:"breaker"`
}

// BreakerConfig guards the journal backend.
type BreakerConfig struct {
	MaxFailures uint32 `json:"max_failures" yaml:"max_failures"`
	Timeout     string `json:"timeout" yaml:"timeout"` // e.g., "30s"
}

// ParseDuration converts the timeout string to time.Duration
func (b BreakerConfig) ParseDuration() (time.Duration, error) {
	if b.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(b.Timeout)
}

// StatementConfig locates the printed statement.
type StatementConfig struct {
	Path string `json:"path" yaml:"path"`
}

// DispatcherConfig sizes the EMI worker pool.
type DispatcherConfig struct {
	Workers   int    `json:"workers" yaml:"workers"`
	QueueSize int    `json:"queue_size" yaml:"queue_size"`
	MaxWait   string `json:"max_wait,omitempty" yaml:"max_wait,omitempty"` // e.g., "250ms"
}

// ParseDuration converts the max wait string to time.Duration
func (d DispatcherConfig) ParseDuration() (time.Duration, error) {
	if d.MaxWait == "" {
		return 0, nil
	}
	return time.ParseDuration(d.MaxWait)
}

// LoggingConfig contains diagnostic logging parameters
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// MetricsConfig contains metrics export parameters
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	// Textfile receives a Prometheus text dump when the shell exits.
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.OpeningBalance < 0 {
		return fmt.Errorf("account.opening_balance must not be negative")
	}
	if c.Loans.Variant != VariantMulti && c.Loans.Variant != VariantSimple {
		return fmt.Errorf("loans.variant must be 'multi' or 'simple'")
	}
	if c.Loans.Variant == VariantSimple && c.Loans.DefaultMonths <= 0 {
		return fmt.Errorf("loans.default_months must be positive for the simple variant")
	}

	switch c.Journal.Type {
	case journal.TypeFile:
		if c.Journal.LogFile == "" {
			return fmt.Errorf("journal log_file required for file type")
		}
	case journal.TypeSQLite:
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case journal.TypeCSV:
		if c.Journal.CSVFile == "" {
			return fmt.Errorf("journal csv_file required for CSV type")
		}
	case journal.TypeRedis:
		if c.Journal.RedisAddr == "" {
			return fmt.Errorf("journal redis_addr required for Redis type")
		}
	default:
		return fmt.Errorf("journal.type must be 'file', 'sqlite', 'csv' or 'redis'")
	}
	if _, err := c.Journal.Breaker.ParseDuration(); err != nil {
		return fmt.Errorf("journal.breaker.timeout: %w", err)
	}

	if c.Statement.Path == "" {
		return fmt.Errorf("statement.path is required")
	}
	if c.Dispatcher.Workers < 0 || c.Dispatcher.QueueSize < 0 {
		return fmt.Errorf("dispatcher workers and queue_size must not be negative")
	}
	if _, err := c.Dispatcher.ParseDuration(); err != nil {
		return fmt.Errorf("dispatcher.max_wait: %w", err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:       "USD",
			OpeningBalance: 1000,
		},
		Loans: LoansConfig{
			Variant:       VariantMulti,
			DefaultMonths: 12,
		},
		Journal: JournalConfig{
			Type:    journal.TypeFile,
			LogFile: "transaction_log.txt",
			Breaker: BreakerConfig{MaxFailures: 3, Timeout: "30s"},
		},
		Statement: StatementConfig{
			Path: "bank_statement.txt",
		},
		Dispatcher: DispatcherConfig{
			Workers:   2,
			QueueSize: 16,
			MaxWait:   "250ms",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Namespace: "banker",
		},
	}
}

// OpeningBalance returns the opening balance as an exact amount.
func (c *Config) OpeningBalance() decimal.Decimal {
	return decimal.NewFromFloat(c.Account.OpeningBalance)
}

// LoanTypes returns the loan categories enabled by the variant.
func (c *Config) LoanTypes() []ledger.LoanType {
	if c.Loans.Variant == VariantSimple {
		return ledger.SimpleLoanTypes
	}
	return ledger.MultiLoanTypes
}

// JournalOptions converts the journal section for journal.Open.
func (c *Config) JournalOptions() journal.Options {
	opts := journal.Options{
		Type:      c.Journal.Type,
		RedisAddr: c.Journal.RedisAddr,
		RedisKey:  c.Journal.RedisKey,
		Breaker:   journal.BreakerConfig{MaxFailures: c.Journal.Breaker.MaxFailures},
	}
	opts.Breaker.Timeout, _ = c.Journal.Breaker.ParseDuration()

	switch c.Journal.Type {
	case journal.TypeSQLite:
		opts.Path = c.Journal.DBPath
	case journal.TypeCSV:
		opts.Path = c.Journal.CSVFile
	default:
		opts.Path = c.Journal.LogFile
	}
	return opts
}

// DispatcherOptions converts the dispatcher section.
func (c *Config) DispatcherOptions() ledger.DispatcherConfig {
	wait, _ := c.Dispatcher.ParseDuration()
	return ledger.DispatcherConfig{
		Workers:   c.Dispatcher.Workers,
		QueueSize: c.Dispatcher.QueueSize,
		MaxWait:   wait,
	}
}

// LoggerConfig converts the logging section.
func (c *Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	if c.Logging.Level != "" {
		lc.Level = c.Logging.Level
	}
	if c.Logging.Format != "" {
		lc.Format = c.Logging.Format
	}
	if c.Logging.File != "" {
		lc.OutputPaths = []string{c.Logging.File}
	}
	return lc
}
