package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const selectRecords = `
	SELECT id, time, kind, loan, amount, message
	FROM transactions`

// Records returns every stored record in insertion order.
func (j *SQLite) Records() ([]Record, error) {
	rows, err := j.db.Query(selectRecords + ` ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// GetRecord returns a single record by ID.
func (j *SQLite) GetRecord(id string) (Record, error) {
	var rec Record
	var kind string

	row := j.db.QueryRow(selectRecords+` WHERE id = ?`, id)
	err := row.Scan(&rec.ID, &rec.Time, &kind, &rec.Loan, &rec.Amount, &rec.Message)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, fmt.Errorf("record %q not found", id)
		}
		return Record{}, err
	}
	rec.Kind = Kind(kind)
	return rec, nil
}

// ListBetween returns records whose time is within [start, end).
func (j *SQLite) ListBetween(start, end time.Time) ([]Record, error) {
	rows, err := j.db.Query(selectRecords+`
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, rowid ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var kind string
		if err := rows.Scan(&rec.ID, &rec.Time, &kind, &rec.Loan, &rec.Amount, &rec.Message); err != nil {
			return nil, err
		}
		rec.Kind = Kind(kind)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
