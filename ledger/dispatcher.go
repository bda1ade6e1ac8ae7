package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/banker/logging"
)

// DispatcherConfig sizes the EMI worker pool.
type DispatcherConfig struct {
	// Workers run payments. Default 2.
	Workers int
	// QueueSize bounds payments waiting for a worker. Default 16.
	QueueSize int
	// MaxWait is how long Submit waits for queue space. Default 250ms.
	MaxWait time.Duration
}

// Result is a finished EMI payment.
type Result struct {
	Loan    LoanType
	Receipt Receipt
	Err     error
}

// Dispatcher runs EMI payments off the caller's goroutine and hands the
// outcomes back on Results. The ledger lock serializes the payments
// themselves; the dispatcher only moves them off the UI loop.
type Dispatcher struct {
	ledger  *Ledger
	cfg     DispatcherConfig
	jobs    chan LoanType
	results chan Result
	group   errgroup.Group
	log     *logging.Logger

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts the workers. Close must be called to stop them.
func NewDispatcher(l *Ledger, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 250 * time.Millisecond
	}

	d := &Dispatcher{
		ledger: l,
		cfg:    cfg,
		jobs:   make(chan LoanType, cfg.QueueSize),
		// Room for every queued and running job, so workers rarely wait
		// on a slow reader.
		results: make(chan Result, cfg.QueueSize+cfg.Workers),
		log:     l.log.Named("dispatcher"),
	}
	for i := 0; i < cfg.Workers; i++ {
		d.group.Go(d.work)
	}
	return d
}

// Submit queues one EMI payment for t. It waits up to MaxWait for queue
// space. Once queued, the payment always runs and always yields a Result.
func (d *Dispatcher) Submit(ctx context.Context, t LoanType) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	timer := time.NewTimer(d.cfg.MaxWait)
	defer timer.Stop()

	select {
	case d.jobs <- t:
		return nil
	case <-timer.C:
		d.log.Warn("emi queue full", zap.Stringer("loan", t))
		return ErrQueueFull
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results delivers one Result per queued payment. It is closed by Close
// after the last one.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Close stops intake, waits for queued payments to finish and closes
// Results. The caller must keep draining Results until then.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	err := d.group.Wait()
	close(d.results)
	return err
}

func (d *Dispatcher) work() error {
	for t := range d.jobs {
		r, err := d.ledger.PayEMI(t)
		d.results <- Result{Loan: t, Receipt: r, Err: err}
	}
	return nil
}
