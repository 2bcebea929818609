package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// cacheItem guarda el valor serializado y su expiración.
type cacheItem struct {
	value     []byte // bytes JSON, igual que en Redis
	expiresAt time.Time
}

type counterItem struct {
	count     int64
	expiresAt time.Time
}

// InMemoryCache implementa Cache y Counter con mapas protegidos por un RWMutex.
// Se usa cuando Redis no está disponible.
type InMemoryCache struct {
	store      map[string]cacheItem
	counters   map[string]counterItem
	mu         sync.RWMutex
	defaultTTL time.Duration
	stopChan   chan struct{}
	stopOnce   sync.Once
	now        func() time.Time
}

var (
	_ Cache   = (*InMemoryCache)(nil)
	_ Counter = (*InMemoryCache)(nil)
)

// NewInMemoryCache crea la caché y arranca la limpieza periódica de claves expiradas.
func NewInMemoryCache(defaultTTL, cleanupInterval time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		store:      make(map[string]cacheItem),
		counters:   make(map[string]counterItem),
		defaultTTL: defaultTTL,
		stopChan:   make(chan struct{}),
		now:        func() time.Time { return time.Now().UTC() },
	}

	if cleanupInterval > 0 {
		go c.cleanupLoop(cleanupInterval)
	}

	return c
}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.store[key]
	if !ok {
		return false, nil
	}

	// expirado cuenta como miss
	if c.now().After(item.expiresAt) {
		return false, nil
	}

	if err := json.Unmarshal(item.value, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (c *InMemoryCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := c.defaultTTL
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}

	c.store[key] = cacheItem{
		value:     data,
		expiresAt: c.now().Add(ttl),
	}

	return nil
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, key)
	return nil
}

func (c *InMemoryCache) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	item, ok := c.counters[key]
	if !ok || now.After(item.expiresAt) {
		item = counterItem{expiresAt: now.Add(window)}
	}
	item.count++
	c.counters[key] = item
	return item.count, nil
}

// Stop detiene la goroutine de limpieza. Es idempotente.
func (c *InMemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *InMemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *InMemoryCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.store {
		if now.After(item.expiresAt) {
			delete(c.store, key)
		}
	}
	for key, item := range c.counters {
		if now.After(item.expiresAt) {
			delete(c.counters, key)
		}
	}
}
