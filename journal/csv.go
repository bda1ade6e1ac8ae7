package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{"id", "time", "kind", "loan", "amount", "message"}

// CSVJournal keeps records as rows of a CSV file. The header is written
// once, when the file is first created.
type CSVJournal struct {
	mu   sync.Mutex
	path string
	f    *os.File
	w    *csv.Writer
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return &CSVJournal{path: path, f: f, w: w}, nil
}

func (j *CSVJournal) Append(r Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.w.Write([]string{
		r.ID,
		r.Time.Format(time.RFC3339Nano),
		string(r.Kind),
		r.Loan,
		r.Amount.String(),
		r.Message,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := j.f.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Records parses every row back into a Record.
func (j *CSVJournal) Records() ([]Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoStatement
		}
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = len(csvHeader)

	var out []Record
	for first := true; ; first = false {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			continue // header
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("csv journal %s: %w", j.path, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (j *CSVJournal) Lines() ([]string, error) {
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

func (j *CSVJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.f.Close()
		return err
	}
	return j.f.Close()
}

func parseRow(row []string) (Record, error) {
	ts, err := time.Parse(time.RFC3339Nano, row[1])
	if err != nil {
		return Record{}, fmt.Errorf("record %s: time: %w", row[0], err)
	}
	amt, err := decimal.NewFromString(row[4])
	if err != nil {
		return Record{}, fmt.Errorf("record %s: amount: %w", row[0], err)
	}
	return Record{
		ID:      row[0],
		Time:    ts,
		Kind:    Kind(row[2]),
		Loan:    row[3],
		Amount:  amt,
		Message: row[5],
	}, nil
}
