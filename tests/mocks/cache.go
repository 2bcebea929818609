package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	sharedCache "github.com/davicafu/einvoicelab/internal/shared/infra/platform/cache"
)

// DummyCache guarda JSON en un mapa, como lo haría Redis, sin TTL.
// Los contadores no caducan: cada test crea su propia instancia.
type DummyCache struct {
	mu       sync.RWMutex
	store    map[string][]byte
	counters map[string]int64
}

var (
	_ sharedCache.Cache   = (*DummyCache)(nil)
	_ sharedCache.Counter = (*DummyCache)(nil)
)

func NewDummyCache() *DummyCache {
	return &DummyCache{
		store:    make(map[string][]byte),
		counters: make(map[string]int64),
	}
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	data, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = data
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *DummyCache) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

// Len devuelve el número de claves guardadas.
func (c *DummyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Has indica si la clave existe, sin deserializar.
func (c *DummyCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.store[key]
	return ok
}
