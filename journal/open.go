package journal

import (
	"fmt"

	"github.com/rustyeddy/banker/logging"
)

// Backend names accepted by Open.
const (
	TypeFile   = "file"
	TypeSQLite = "sqlite"
	TypeCSV    = "csv"
	TypeRedis  = "redis"
)

// Options selects and locates a backend.
type Options struct {
	Type string
	// Path is the log file, SQLite database or CSV file, depending on Type.
	Path      string
	RedisAddr string
	RedisKey  string
	Breaker   BreakerConfig
}

// Open builds the backend named by opts.Type and wraps it in a Breaker.
func Open(opts Options, log *logging.Logger) (Journal, error) {
	var (
		j   Journal
		err error
	)

	switch opts.Type {
	case TypeFile, "":
		j, err = NewFile(opts.Path)
	case TypeSQLite:
		j, err = NewSQLite(opts.Path)
	case TypeCSV:
		j, err = NewCSV(opts.Path)
	case TypeRedis:
		j, err = NewRedis(opts.RedisAddr, opts.RedisKey)
	default:
		return nil, fmt.Errorf("unknown journal type %q", opts.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s journal: %w", opts.Type, err)
	}

	return NewBreaker(j, opts.Breaker, log), nil
}
