package assist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores raw replies by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CacheKey identifies a request by everything that shapes its prompt.
func CacheKey(r Request) string {
	h := sha256.New()
	for _, part := range []string{string(r.Style), r.TaskName, r.Challenge, r.SuggestedSolution} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CachedCompleter serves repeated requests from a Cache. Cache failures
// are logged and treated as misses.
type CachedCompleter struct {
	inner Completer
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedCompleter wraps inner with cache.
func NewCachedCompleter(inner Completer, cache Cache, ttl time.Duration, log *zap.Logger) *CachedCompleter {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedCompleter{inner: inner, cache: cache, ttl: ttl, log: log}
}

func (c *CachedCompleter) Complete(ctx context.Context, req Request) (string, error) {
	key := CacheKey(req)

	cached, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.log.Warn("assist cache get failed", zap.Error(err))
	case ok:
		c.log.Debug("assist cache hit", zap.String("style", string(req.Style)))
		return cached, nil
	}

	out, err := c.inner.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
		c.log.Warn("assist cache set failed", zap.Error(err))
	}
	return out, nil
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryCache is an in-process Cache. Expired entries are dropped on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value. A non-positive ttl never expires.
func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// size returns the number of stored entries, expired or not.
func (m *MemoryCache) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

const redisKeyPrefix = "aloud:assist:"

// RedisCache shares replies between server instances.
type RedisCache struct {
	client redis.Cmdable
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}
