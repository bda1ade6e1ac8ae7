package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// FileJournal appends rendered lines to a plain text file.
type FileJournal struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// NewFile opens path for appending, creating it if needed.
func NewFile(path string) (*FileJournal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileJournal{path: path, f: f}, nil
}

func (j *FileJournal) Append(r Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.f.WriteString(r.Line() + "\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := j.f.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (j *FileJournal) Lines() ([]string, error) {
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

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Close()
}
