package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"hotel-availability/internal/availability"
)

// CachedInventory memoizes hotel inventories of an underlying lookup.
// Unknown hotels and lookup failures are not cached.
type CachedInventory struct {
	next  availability.InventoryLookup
	cache *cache.Cache

	// generation counts flushes; a lookup that overlapped a flush does not store its result.
	mu         sync.Mutex
	generation uint64
}

// NewCachedInventory wraps next with an in-memory cache whose entries expire after ttl.
func NewCachedInventory(next availability.InventoryLookup, ttl time.Duration) *CachedInventory {
	return &CachedInventory{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedInventory) Inventory(ctx context.Context, hotelID string) (availability.Inventory, error) {
	if cached, found := c.cache.Get(hotelID); found {
		return cached.(availability.Inventory), nil
	}

	c.mu.Lock()
	started := c.generation
	c.mu.Unlock()

	inv, err := c.next.Inventory(ctx, hotelID)
	if err != nil {
		return inv, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation == started {
		c.cache.Set(hotelID, inv, cache.DefaultExpiration)
	}
	return inv, nil
}

// Flush drops every cached inventory, including results of lookups still in flight.
func (c *CachedInventory) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	slog.Debug("flushing inventory cache", "entries", c.cache.ItemCount())
	c.generation++
	c.cache.Flush()
}
