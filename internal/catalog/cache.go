package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/donaldgifford/marketplace-client/internal/metrics"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// Cache defaults.
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 10 * time.Minute
)

const marketsKey = "markets"

// CachingService wraps a Service with an in-memory, expiring cache for
// market lists, categories and nodes. Favorites resolved through it use the
// cached node lookup.
type CachingService struct {
	*Service

	markets    *expirable.LRU[string, []domain.Market]
	categories *expirable.LRU[string, domain.Category]
	nodes      *expirable.LRU[string, domain.Node]
}

// NewCachingService caches lookups of delegate. size <= 0 and ttl <= 0
// select the defaults. Entries are copied on the way in and out, so callers
// may modify what they get back.
func NewCachingService(delegate *Service, size int, ttl time.Duration) *CachingService {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &CachingService{
		markets:    expirable.NewLRU[string, []domain.Market](1, nil, ttl),
		categories: expirable.NewLRU[string, domain.Category](size, nil, ttl),
		nodes:      expirable.NewLRU[string, domain.Node](size, nil, ttl),
	}
	svc := delegate.WithResolver(c)
	svc.markets = c.ListMarkets
	c.Service = svc
	return c
}

// ListMarkets returns the cached market list, fetching it on a miss.
func (c *CachingService) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	if markets, ok := c.markets.Get(marketsKey); ok {
		metrics.CacheHitsTotal.WithLabelValues("markets").Inc()
		return cloneMarkets(markets), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("markets").Inc()

	markets, err := c.Service.ListMarkets(ctx)
	if err != nil {
		return nil, err
	}
	c.markets.Add(marketsKey, cloneMarkets(markets))
	return markets, nil
}

// Market resolves against the cached market list.
func (c *CachingService) Market(ctx context.Context, query domain.Market) (domain.Market, error) {
	if err := validateMarketQuery(query); err != nil {
		return domain.Market{}, err
	}
	markets, err := c.ListMarkets(ctx)
	if err != nil {
		return domain.Market{}, err
	}
	return findMarket(markets, query)
}

// Category returns a cached category, keyed by id and url.
func (c *CachingService) Category(ctx context.Context, query domain.Category) (domain.Category, error) {
	// Service.Category prefers the url, so the cache does too.
	key := "id:" + query.ID
	if query.URL != "" {
		key = "url:" + query.URL
	}
	if cat, ok := c.categories.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("category").Inc()
		return cat.Clone(), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("category").Inc()

	cat, err := c.Service.Category(ctx, query)
	if err != nil {
		return domain.Category{}, err
	}
	stored := cat.Clone()
	c.categories.Add(key, stored)
	for _, k := range cacheKeys(cat.ID, cat.URL) {
		c.categories.Add(k, stored)
	}
	return cat, nil
}

// Node returns a cached node, keyed by id and url.
func (c *CachingService) Node(ctx context.Context, query domain.Node) (domain.Node, error) {
	key := "url:" + query.URL
	if query.ID != "" {
		key = "id:" + query.ID
	}
	if node, ok := c.nodes.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("node").Inc()
		return node.Clone(), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("node").Inc()

	node, err := c.Service.Node(ctx, query)
	if err != nil {
		return domain.Node{}, err
	}
	stored := node.Clone()
	c.nodes.Add(key, stored)
	for _, k := range cacheKeys(node.ID, node.URL) {
		c.nodes.Add(k, stored)
	}
	return node, nil
}

// Purge drops every cached entry.
func (c *CachingService) Purge() {
	c.markets.Purge()
	c.categories.Purge()
	c.nodes.Purge()
}

func cloneMarkets(markets []domain.Market) []domain.Market {
	if markets == nil {
		return nil
	}
	out := make([]domain.Market, len(markets))
	for i := range markets {
		out[i] = markets[i].Clone()
	}
	return out
}

// cacheKeys lists the keys a resolved entry is stored under, so an entry
// found by url is also reachable by its id.
func cacheKeys(id, rawURL string) []string {
	if id != "" {
		keys := []string{"id:" + id}
		if rawURL != "" {
			keys = append(keys, "url:"+rawURL)
		}
		return keys
	}
	if rawURL != "" {
		return []string{"url:" + rawURL}
	}
	return nil
}
