package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
)

// RedisServiceabilityCache implements shipping.ServiceabilityCache using Redis.
// Suitable for distributed deployments where multiple instances should share
// pincode serviceability verdicts. Cache failures are logged and treated as
// misses; the carrier remains the source of truth.
type RedisServiceabilityCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisServiceabilityCache creates a new Redis-backed serviceability cache
func NewRedisServiceabilityCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisServiceabilityCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisServiceabilityCacheWithClient(client, ttl, logger), nil
}

// NewRedisServiceabilityCacheWithClient creates a cache with an existing Redis
// client. This is useful for testing or when sharing a client across components
func NewRedisServiceabilityCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisServiceabilityCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisServiceabilityCache{
		client:    client,
		keyPrefix: "shipping:serviceability:",
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the cached verdict for a pincode and whether one exists
func (c *RedisServiceabilityCache) Get(ctx context.Context, pincode string) (bool, bool) {
	val, err := c.client.Get(ctx, c.keyPrefix+pincode).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("serviceability cache read failed",
				zap.String("pincode", pincode),
				zap.Error(err))
		}
		return false, false
	}
	return val == "1", true
}

// Set stores a verdict with the configured TTL
func (c *RedisServiceabilityCache) Set(ctx context.Context, pincode string, serviceable bool) {
	val := "0"
	if serviceable {
		val = "1"
	}
	if err := c.client.Set(ctx, c.keyPrefix+pincode, val, c.ttl).Err(); err != nil {
		c.logger.Warn("serviceability cache write failed",
			zap.String("pincode", pincode),
			zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisServiceabilityCache) Close() error {
	return c.client.Close()
}

// Ensure RedisServiceabilityCache implements ServiceabilityCache
var _ shipping.ServiceabilityCache = (*RedisServiceabilityCache)(nil)
