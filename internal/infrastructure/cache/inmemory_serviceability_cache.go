package cache

import (
	"context"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/shipping"
)

// entry represents a cached verdict with expiration
type entry struct {
	serviceable bool
	expiresAt   time.Time
}

// InMemoryServiceabilityCache implements shipping.ServiceabilityCache using an
// in-memory map. Suitable for single-instance deployments and testing.
type InMemoryServiceabilityCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryServiceabilityCache creates a new in-memory serviceability cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryServiceabilityCache(ttl time.Duration) *InMemoryServiceabilityCache {
	if ttl <= 0 {
		ttl = time.Hour
	}

	cache := &InMemoryServiceabilityCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get returns the cached verdict for a pincode and whether one exists
func (c *InMemoryServiceabilityCache) Get(_ context.Context, pincode string) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[pincode]
	if !exists {
		return false, false
	}

	// Expired entries are treated as misses
	if time.Now().After(e.expiresAt) {
		return false, false
	}

	return e.serviceable, true
}

// Set stores a verdict with the configured TTL
func (c *InMemoryServiceabilityCache) Set(_ context.Context, pincode string, serviceable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[pincode] = entry{
		serviceable: serviceable,
		expiresAt:   time.Now().Add(c.ttl),
	}
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryServiceabilityCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryServiceabilityCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryServiceabilityCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for pincode, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, pincode)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryServiceabilityCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryServiceabilityCache implements ServiceabilityCache
var _ shipping.ServiceabilityCache = (*InMemoryServiceabilityCache)(nil)
