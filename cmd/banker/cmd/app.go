package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/banker/config"
	"github.com/rustyeddy/banker/journal"
	"github.com/rustyeddy/banker/ledger"
	"github.com/rustyeddy/banker/logging"
	"github.com/rustyeddy/banker/metrics/prometheus"
)

// app is the ledger and everything it writes to, built from one config.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	metrics *prometheus.Collector
	journal journal.Journal
	ledger  *ledger.Ledger
}

func newApp(cfg *config.Config) (*app, error) {
	log, err := logging.NewLogger(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log = log.With(zap.String("currency", cfg.Account.Currency))

	j, err := journal.Open(cfg.JournalOptions(), log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	m := prometheus.NewCollector(cfg.Metrics.Namespace)
	l := ledger.New(cfg.OpeningBalance(), j,
		ledger.WithLoanTypes(cfg.LoanTypes()...),
		ledger.WithLogger(log),
		ledger.WithMetrics(m),
	)

	log.Info("ledger ready",
		zap.String("journal", cfg.Journal.Type),
		zap.String("variant", cfg.Loans.Variant),
		zap.String("opening_balance", ledger.Money(cfg.OpeningBalance())),
	)

	return &app{cfg: cfg, log: log, metrics: m, journal: j, ledger: l}, nil
}

// Close writes the metrics textfile, if configured, and releases the journal.
func (a *app) Close() error {
	var firstErr error
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.log.Warn("metrics textfile not written", zap.String("path", path), zap.Error(err))
			firstErr = fmt.Errorf("write metrics: %w", err)
		}
	}
	if err := a.journal.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close journal: %w", err)
	}
	_ = a.log.Sync()
	return firstErr
}
