package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "query:"

// Cache key builders. Keys are hierarchical so whole families can be
// invalidated by prefix after a mutation.
func CartKey(userID string) string   { return "cart:" + userID }
func OrdersKey(userID string) string { return "orders:" + userID }

func OrderKey(userID string, id int64) string {
	return fmt.Sprintf("orders:%s:%d", userID, id)
}

func ProductsAllKey() string              { return "products:all" }
func ProductsCategoryKey(c string) string { return "products:category:" + c }

func ProductsSearchKey(keyword string) string {
	return "products:search:" + keyword
}

func ProductKey(id int64) string   { return fmt.Sprintf("product:%d", id) }
func CategoriesKey() string        { return "categories" }
func RoleKey(userID string) string { return "role:" + userID }

// Invalidation prefixes. A prefix matches every key it starts, so
// "products" clears all list, category and search results at once.
func CartPrefix(userID string) string   { return "cart:" + userID }
func OrdersPrefix(userID string) string { return "orders:" + userID }
func ProductsPrefix() string            { return "products" }
func ProductPrefix(id int64) string     { return fmt.Sprintf("product:%d", id) }

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_hits_total",
			Help: "Total number of query cache hits",
		},
		[]string{"key_prefix"},
	)

	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_misses_total",
			Help: "Total number of query cache misses",
		},
		[]string{"key_prefix"},
	)
)

func init() {
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
}

// QueryCache is a Redis-backed read-through cache for backend query
// results. Values are stored as JSON with a uniform TTL; mutations
// invalidate related keys by prefix rather than waiting for expiry.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewQueryCache creates a query cache with the given TTL.
func NewQueryCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *QueryCache {
	return &QueryCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// Get loads a cached value into out. The second return value reports
// whether the key was present. Cache read failures are returned so the
// caller can decide to fall through to the backend.
func (c *QueryCache) Get(ctx context.Context, key string, out any) (bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			cacheMisses.WithLabelValues(metricLabel(key)).Inc()
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshal cached %s: %w", key, err)
	}

	cacheHits.WithLabelValues(metricLabel(key)).Inc()
	return true, nil
}

// Set stores a value under the given key with the cache TTL.
func (c *QueryCache) Set(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Invalidate removes every cached key starting with any of the given
// prefixes. Uses SCAN rather than KEYS so a hot cache is never blocked.
func (c *QueryCache) Invalidate(ctx context.Context, prefixes ...string) error {
	for _, prefix := range prefixes {
		pattern := keyPrefix + prefix + "*"

		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("redis scan %s: %w", pattern, err)
		}

		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", pattern, err)
		}

		c.logger.DebugContext(ctx, "cache invalidated",
			slog.String("prefix", prefix),
			slog.Int("keys", len(keys)),
		)
	}
	return nil
}

// metricLabel collapses a cache key to its first segment so the metric
// cardinality stays bounded.
func metricLabel(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
