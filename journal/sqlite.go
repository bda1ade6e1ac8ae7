package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Append(r Record) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(id, time, kind, loan, amount, message)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, string(r.Kind), r.Loan, r.Amount, r.Message,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (j *SQLite) Lines() ([]string, error) {
	recs, err := j.Records()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Line())
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
