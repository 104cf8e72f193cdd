// Package redisdb keeps cache entries in redis so they survive restarts and are shared
// between gateway instances.
package redisdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hedisam/tonrpc/internal/cache"
)

const (
	// DefaultTTL is how long an entry lives when no ttl is configured.
	DefaultTTL = time.Hour
	keyPrefix  = "tonrpc:"
)

type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// New wraps an existing redis client. A non-positive ttl falls back to DefaultTTL.
func New(client redis.Cmdable, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Connect creates a client for addr and checks it is reachable.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	err := client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not ping redis at %s: %w", addr, err)
	}

	return client, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	err := s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
