package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/rustyeddy/banker/logging"
)

// BreakerConfig controls when a failing backend stops being tried.
type BreakerConfig struct {
	// MaxFailures consecutive append failures open the breaker. Default 3.
	MaxFailures uint32
	// Timeout is how long the breaker stays open before probing again. Default 30s.
	Timeout time.Duration
}

// Breaker guards appends to another Journal with a circuit breaker so a dead
// store fails fast instead of stalling every ledger operation.
type Breaker struct {
	next Journal
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(next Journal, cfg BreakerConfig, log *logging.Logger) *Breaker {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logging.NewNoOpLogger()
	}
	log = log.Named("journal")

	settings := gobreaker.Settings{
		Name:        "journal",
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("journal breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Append(r Record) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Append(r)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return err
}

func (b *Breaker) Lines() ([]string, error) {
	return b.next.Lines()
}

func (b *Breaker) Close() error {
	return b.next.Close()
}

// State reports the breaker state: closed, half-open or open.
func (b *Breaker) State() string {
	return b.cb.State().String()
}
