package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheSize = 512
	defaultCacheTTL  = 10 * time.Second
)

// CachedReader decorates a Reader with a small expiring LRU per lookup
// class and collapses concurrent identical lookups, so several validations
// running at once don't stampede the node with the same question. History
// pages are never cached; markers make them cheap to re-request and stale
// pages are worse than slow ones.
type CachedReader struct {
	inner Reader

	balances *expirable.LRU[string, string]
	lines    *expirable.LRU[string, *TrustLineView]

	group singleflight.Group
}

// NewCachedReader wraps inner with ttl-bounded caches. A non-positive ttl
// falls back to the default.
func NewCachedReader(inner Reader, ttl time.Duration) *CachedReader {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedReader{
		inner:    inner,
		balances: expirable.NewLRU[string, string](defaultCacheSize, nil, ttl),
		lines:    expirable.NewLRU[string, *TrustLineView](defaultCacheSize, nil, ttl),
	}
}

func (c *CachedReader) AvailableBalance(ctx context.Context, address string) (string, error) {
	if balance, ok := c.balances.Get(address); ok {
		return balance, nil
	}

	v, err, _ := c.group.Do("balance:"+address, func() (any, error) {
		balance, err := c.inner.AvailableBalance(ctx, address)
		if err != nil {
			return "", err
		}
		c.balances.Add(address, balance)
		return balance, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *CachedReader) FilteredAccountLine(ctx context.Context, address string, filter LineFilter) (*TrustLineView, error) {
	key := address + "|" + filter.Currency + "|" + filter.Issuer
	if line, ok := c.lines.Get(key); ok {
		return line, nil
	}

	v, err, _ := c.group.Do("line:"+key, func() (any, error) {
		line, err := c.inner.FilteredAccountLine(ctx, address, filter)
		if err != nil {
			return nil, err
		}
		// Absent lines are cached too; "no trust line" is as much an
		// answer as a line view.
		c.lines.Add(key, line)
		return line, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TrustLineView), nil
}

func (c *CachedReader) Transactions(ctx context.Context, address string, marker string, limit int) (TransactionsPage, error) {
	return c.inner.Transactions(ctx, address, marker, limit)
}

var _ Reader = (*CachedReader)(nil)
