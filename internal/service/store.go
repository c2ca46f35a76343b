package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ProfileKeyPrefix = "foodai_survey"
	BatchKeyPrefix   = "foodai_ingest"

	// BatchTTL is how long the last ingestion batch stays retrievable.
	BatchTTL = time.Hour
)

// RedisStore is a BlobStore backed by Redis string keys.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ ProfileRepository = (*RedisStore)(nil)

// NewRedisStore creates a store writing keys as "<prefix>:<clientID>". A
// zero ttl keeps keys until deleted.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// NewRedisProfileRepository stores survey blobs under foodai_survey:<clientID>.
func NewRedisProfileRepository(client *redis.Client, ttl time.Duration) *RedisStore {
	return NewRedisStore(client, ProfileKeyPrefix, ttl)
}

func (s *RedisStore) key(clientID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, clientID)
}

func (s *RedisStore) Load(ctx context.Context, clientID string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from Redis: %w", s.prefix, err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, clientID string, data []byte) error {
	if err := s.client.Set(ctx, s.key(clientID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s to Redis: %w", s.prefix, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.key(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from Redis: %w", s.prefix, err)
	}
	return nil
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is a process-local BlobStore used when Redis is not
// configured. Entries do not survive a restart. Expired entries are swept
// on Save at most once per ttl.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

var _ ProfileRepository = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store. A zero ttl keeps entries until
// deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, clientID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[clientID]
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.entries, clientID)
		return nil, nil
	}
	return append([]byte(nil), e.data...), nil
}

func (s *MemoryStore) Save(_ context.Context, clientID string, data []byte) error {
	e := memoryEntry{data: append([]byte(nil), data...)}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.entries[clientID] = e
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryStore) sweep() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	delete(s.entries, clientID)
	s.mu.Unlock()
	return nil
}
