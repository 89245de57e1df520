// internal/datecard/cache.go
// Redis-backed cache in front of a venue search client

package datecard

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	venueCachePrefix     = "venue:search:"
	DefaultVenueCacheTTL = 6 * time.Hour
)

// CachedSearchClient caches non-empty search results in Redis. Any Redis
// problem is logged and the wrapped client is asked instead.
type CachedSearchClient struct {
	next   VenueSearchClient
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSearchClient(next VenueSearchClient, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSearchClient {
	if ttl <= 0 {
		ttl = DefaultVenueCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSearchClient{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedSearchClient) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	key := venueCacheKey(q)

	if cached, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var results []SearchResult
		if err := json.Unmarshal(cached, &results); err == nil {
			venueCacheHits.WithLabelValues("hit").Inc()
			return results, nil
		}
	} else if err != redis.Nil {
		c.logger.Debug("venue cache read failed", zap.String("key", key), zap.Error(err))
	}
	venueCacheHits.WithLabelValues("miss").Inc()

	results, err := c.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	// Empty answers are not cached so a later lookup can still succeed.
	if len(results) > 0 {
		data, err := json.Marshal(results)
		if err == nil {
			if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
				c.logger.Debug("venue cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return results, nil
}

func venueCacheKey(q SearchQuery) string {
	raw := strings.ToLower(strings.TrimSpace(q.Query)) + "|" +
		strings.ToLower(strings.TrimSpace(q.City)) + "|" +
		strconv.Itoa(q.Limit)
	sum := sha1.Sum([]byte(raw))
	return venueCachePrefix + hex.EncodeToString(sum[:])
}
