package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appshipping "github.com/erp/shipping/internal/application/shipping"
	"github.com/erp/shipping/internal/infrastructure/config"
)

// RedisRateCache caches postage quotes in Redis. Cache failures are
// logged and treated as misses so a Redis outage never blocks quoting.
type RedisRateCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisRateCacheOption is a functional option for configuring the cache
type RedisRateCacheOption func(*RedisRateCache)

// WithRateCacheLogger sets the logger for the cache
func WithRateCacheLogger(logger *zap.Logger) RedisRateCacheOption {
	return func(c *RedisRateCache) {
		c.logger = logger
	}
}

// NewRedisRateCache creates a new Redis-backed postage quote cache
func NewRedisRateCache(cfg *config.RedisConfig, opts ...RedisRateCacheOption) (*RedisRateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisRateCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisRateCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisRateCacheWithClient(client *redis.Client, opts ...RedisRateCacheOption) *RedisRateCache {
	cache := &RedisRateCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get returns the cached quote for the key, if present
func (c *RedisRateCache) Get(ctx context.Context, key string) (decimal.Decimal, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for postage quote", zap.String("key", key))
		return decimal.Zero, false
	}
	if err != nil {
		c.logger.Error("Failed to get postage quote from cache",
			zap.String("key", key),
			zap.Error(err))
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(data)
	if err != nil {
		c.logger.Error("Corrupted postage quote in cache",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return decimal.Zero, false
	}

	c.logger.Debug("Cache hit for postage quote", zap.String("key", key))
	return amount, true
}

// Set stores the quote under the key with the given TTL
func (c *RedisRateCache) Set(ctx context.Context, key string, amount decimal.Decimal, ttl time.Duration) {
	if err := c.client.Set(ctx, key, amount.String(), ttl).Err(); err != nil {
		c.logger.Error("Failed to cache postage quote",
			zap.String("key", key),
			zap.Error(err))
		return
	}
	c.logger.Debug("Cached postage quote",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
}

// Close releases the Redis client if this cache owns it
func (c *RedisRateCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// InMemoryRateCache is a process-local quote cache used in tests and
// single-instance deployments that run without Redis.
type InMemoryRateCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	amount    decimal.Decimal
	expiresAt time.Time
}

// NewInMemoryRateCache creates an empty in-memory quote cache
func NewInMemoryRateCache() *InMemoryRateCache {
	return &InMemoryRateCache{entries: make(map[string]inMemoryEntry)}
}

// Get returns the cached quote for the key, if present and not expired
func (c *InMemoryRateCache) Get(_ context.Context, key string) (decimal.Decimal, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return decimal.Zero, false
	}
	return entry.amount, true
}

// Set stores the quote under the key with the given TTL
func (c *InMemoryRateCache) Set(_ context.Context, key string, amount decimal.Decimal, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = inMemoryEntry{amount: amount, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Compile-time interface compliance checks
var _ appshipping.RateCache = (*RedisRateCache)(nil)
var _ appshipping.RateCache = (*InMemoryRateCache)(nil)
