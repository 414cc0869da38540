package cache

import (
	"fmt"
	"time"

	"btcwallet/internal/domain"

	"github.com/dgraph-io/ristretto"
)

const walletKey = "wallet"

// RistrettoWalletCache keeps the last read wallet row. Ristretto may reject a
// write, so callers treat a miss as "go to the store".
type RistrettoWalletCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewWalletCache(ttl time.Duration) (*RistrettoWalletCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create wallet cache failed: %w", err)
	}
	return &RistrettoWalletCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoWalletCache) Get() (domain.Wallet, bool) {
	if v, ok := c.cache.Get(walletKey); ok {
		w, ok := v.(domain.Wallet)
		return w, ok
	}
	return domain.Wallet{}, false
}

func (c *RistrettoWalletCache) Set(wallet domain.Wallet) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(walletKey, wallet, 1, c.ttl)
	} else {
		c.cache.Set(walletKey, wallet, 1)
	}
	c.cache.Wait()
}

func (c *RistrettoWalletCache) Invalidate() { c.cache.Del(walletKey) }

func (c *RistrettoWalletCache) Close() { c.cache.Close() }
