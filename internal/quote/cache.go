package quote

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Cache wraps a Provider with a TTL memory of recent prices. A stale or
// missing entry falls through to the inner provider; pushed updates (cron
// warm, stream ticks) land via Set.
type Cache struct {
	inner Provider
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	price   decimal.Decimal
	fetched time.Time
}

func NewCache(inner Provider, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		inner:   inner,
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

func (c *Cache) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if c == nil {
		return decimal.Zero, ErrNoQuote
	}

	c.mu.RLock()
	entry, ok := c.entries[symbol]
	c.mu.RUnlock()
	if ok && time.Since(entry.fetched) < c.ttl {
		return entry.price, nil
	}

	if c.inner == nil {
		return decimal.Zero, ErrNoQuote
	}
	price, err := c.inner.GetPrice(ctx, symbol)
	if err != nil {
		// A stale entry beats no entry when the provider is down.
		if ok {
			return entry.price, nil
		}
		return decimal.Zero, err
	}

	c.Set(symbol, price)
	return price, nil
}

func (c *Cache) Set(symbol string, price decimal.Decimal) {
	if c == nil || symbol == "" || price.IsZero() {
		return
	}
	c.mu.Lock()
	c.entries[symbol] = cacheEntry{price: price, fetched: time.Now()}
	c.mu.Unlock()
}

// Warm refreshes all given symbols, best effort. Used by the cron job so
// read-path lookups mostly hit warm entries.
func (c *Cache) Warm(ctx context.Context, symbols []string) {
	if c == nil || c.inner == nil {
		return
	}
	for _, sym := range symbols {
		if ctx.Err() != nil {
			return
		}
		price, err := c.inner.GetPrice(ctx, sym)
		if err != nil {
			continue
		}
		c.Set(sym, price)
	}
}
