package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"okclinic/utils/clock"

	"github.com/go-redis/redis/v8"
)

// CodeStore is a small key-value store whose entries expire. It holds
// signup verification codes, verified-email marks and password reset codes.
type CodeStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns ok=false when the key is missing or expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Delete(ctx context.Context, key string) error
}

// RedisCodeStore keeps codes in Redis under a fixed prefix.
type RedisCodeStore struct {
	client *redis.Client
	prefix string
}

func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client, prefix: "code:"}
}

func (s *RedisCodeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read code: %w", err)
	}
	return v, true, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCodeStore is an in-process CodeStore for development and tests.
type MemoryCodeStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]memoryEntry
}

func NewMemoryCodeStore(c clock.Clock) *MemoryCodeStore {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &MemoryCodeStore{clock: c, entries: make(map[string]memoryEntry)}
}

func (s *MemoryCodeStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

func (s *MemoryCodeStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !s.clock.Now().Before(e.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryCodeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
