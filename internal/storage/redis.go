package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// RedisBackend stores values as plain redis strings. Each call is bounded
// by the configured timeout.
type RedisBackend struct {
	mu       sync.RWMutex
	attached bool
	client   *redis.Client
	timeout  time.Duration
}

// NewRedisBackend creates an unattached redis backend.
func NewRedisBackend() *RedisBackend {
	return &RedisBackend{}
}

// Attach connects to config.Redis.Addr and pings the server. The client
// is closed again if the ping fails.
func (b *RedisBackend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if config.Redis.Addr == "" {
		return types.ErrRedisAddrEmpty
	}

	timeout := config.Redis.GetTimeout()
	client := redis.NewClient(&redis.Options{
		Addr:         config.Redis.Addr,
		Password:     config.Redis.Password,
		DB:           config.Redis.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolSize:     1,
		MaxRetries:   -1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("ping %s: %w", config.Redis.Addr, err)
	}

	b.client = client
	b.timeout = timeout
	b.attached = true
	return nil
}

// Detach closes the redis client. Idempotent.
func (b *RedisBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	err := b.client.Close()
	b.client = nil
	if err != nil {
		return fmt.Errorf("closing redis client: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (b *RedisBackend) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	value, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key without expiry.
func (b *RedisBackend) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrBackendDetached
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
