package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = 'transactions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "transactions", name)
}

func TestSQLiteAppendStoresColumns(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	rec := sampleRecords()[1]

	require.NoError(t, j.Append(rec))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		id      string
		ts      time.Time
		kind    string
		loan    string
		amount  string
		message string
	)
	err = db.QueryRow(`SELECT id, time, kind, loan, amount, message FROM transactions LIMIT 1`).
		Scan(&id, &ts, &kind, &loan, &amount, &message)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, id)
	assert.True(t, ts.Equal(rec.Time))
	assert.Equal(t, "loan", kind)
	assert.Equal(t, "Home", loan)
	assert.Equal(t, "2400", amount)
	assert.Equal(t, rec.Message, message)
}

func TestSQLiteLinesInAppendOrder(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	for _, r := range sampleRecords() {
		require.NoError(t, j.Append(r))
	}

	lines, err := j.Lines()
	require.NoError(t, err)
	assert.Equal(t, sampleLines(), lines)
}

func TestSQLiteDuplicateIDIsWriteError(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	rec := sampleRecords()[0]
	require.NoError(t, j.Append(rec))
	assert.ErrorIs(t, j.Append(rec), ErrWrite)
}
