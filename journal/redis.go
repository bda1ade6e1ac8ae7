package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list that holds the log lines.
const DefaultRedisKey = "banker:transactions"

// listClient is the part of *redis.Client the journal uses.
type listClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Close() error
}

// RedisJournal pushes rendered lines onto a Redis list.
type RedisJournal struct {
	client  listClient
	key     string
	timeout time.Duration
}

// NewRedis connects to addr and checks the server answers.
func NewRedis(addr, key string) (*RedisJournal, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}

	return newRedisJournal(client, key), nil
}

func newRedisJournal(client listClient, key string) *RedisJournal {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisJournal{client: client, key: key, timeout: 3 * time.Second}
}

func (j *RedisJournal) Append(r Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.client.RPush(ctx, j.key, r.Line()).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (j *RedisJournal) Lines() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	return j.client.LRange(ctx, j.key, 0, -1).Result()
}

func (j *RedisJournal) Close() error {
	return j.client.Close()
}
