package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client. Timeouts are short: callers treat
// redis as optional and fall back when it is slow.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// JSONCache stores JSON-encoded values of one type under a key prefix.
type JSONCache[T any] struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache[T any](rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get reports false without error on a miss.
func (c *JSONCache[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var v T
	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("redis get %s: %w", c.prefix+key, err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", c.prefix+key, err)
	}
	return v, true, nil
}

func (c *JSONCache[T]) Set(ctx context.Context, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, c.prefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.prefix+key, err)
	}
	return nil
}
