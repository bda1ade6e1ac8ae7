package prometheus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/banker/metrics"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("banker")

	c.RecordOperation("deposit", metrics.OutcomeOK)
	c.RecordOperation("deposit", metrics.OutcomeOK)
	c.RecordOperation("withdraw", metrics.OutcomeRejected)
	c.RecordJournalFailure()
	c.SetBalance(1234.5)
	c.SetOutstanding("Home", 2300)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("deposit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("withdraw", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.journalFailures))
	assert.Equal(t, 1234.5, testutil.ToFloat64(c.balance))
	assert.Equal(t, 2300.0, testutil.ToFloat64(c.outstanding.WithLabelValues("Home")))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector("banker")
	c.SetBalance(1000)

	path := filepath.Join(t.TempDir(), "banker.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "banker_balance 1000")
}
