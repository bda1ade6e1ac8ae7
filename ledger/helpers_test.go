package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/banker/journal"
)

// memJournal keeps appended records in memory and can be told to fail.
type memJournal struct {
	mu      sync.Mutex
	records []journal.Record
	fail    bool
	closed  bool
}

func (j *memJournal) Append(r journal.Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail {
		return errors.Join(journal.ErrWrite, errors.New("disk full"))
	}
	j.records = append(j.records, r)
	return nil
}

func (j *memJournal) Lines() ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.records))
	for i, r := range j.records {
		out[i] = r.Line()
	}
	return out, nil
}

func (j *memJournal) Close() error {
	j.closed = true
	return nil
}

func (j *memJournal) len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.records)
}

var testTime = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func fixedClock() time.Time { return testTime }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newLedger(t *testing.T, opening string, opts ...Option) (*Ledger, *memJournal) {
	t.Helper()
	j := &memJournal{}
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return New(dec(opening), j, opts...), j
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s", want, got)
}

func decFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
