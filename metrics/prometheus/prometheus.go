// Package prometheus exports ledger metrics through client_golang.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rustyeddy/banker/metrics"
)

// Collector implements metrics.Collector on a private registry.
type Collector struct {
	registry *prometheus.Registry

	operations      *prometheus.CounterVec
	journalFailures prometheus.Counter
	balance         prometheus.Gauge
	outstanding     *prometheus.GaugeVec
}

// NewCollector registers every metric under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Ledger operations by kind and outcome",
			},
			[]string{"op", "outcome"},
		),
		journalFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "journal_write_failures_total",
				Help:      "Records that could not be appended to the transaction log",
			},
		),
		balance: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "balance",
				Help:      "Current savings balance",
			},
		),
		outstanding: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "loan_outstanding",
				Help:      "Outstanding principal per loan type",
			},
			[]string{"loan"},
		),
	}

	c.registry.MustRegister(c.operations, c.journalFailures, c.balance, c.outstanding)
	return c
}

func (c *Collector) RecordOperation(op string, outcome metrics.Outcome) {
	c.operations.WithLabelValues(op, string(outcome)).Inc()
}

func (c *Collector) SetBalance(balance float64) {
	c.balance.Set(balance)
}

func (c *Collector) SetOutstanding(loan string, amount float64) {
	c.outstanding.WithLabelValues(loan).Set(amount)
}

func (c *Collector) RecordJournalFailure() {
	c.journalFailures.Inc()
}

// WriteTextfile dumps the current values in the node_exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

var _ metrics.Collector = (*Collector)(nil)
