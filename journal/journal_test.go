package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordLine(t *testing.T) {
	t.Parallel()

	r := Record{
		Time:    time.Date(2024, 7, 9, 18, 5, 3, 0, time.UTC),
		Message: "Withdrawn: $20.00",
	}
	assert.Equal(t, "[2024-07-09 18:05:03] Withdrawn: $20.00", r.Line())
}
