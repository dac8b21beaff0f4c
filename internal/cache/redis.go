package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wb-go/wbf/logger"

	"github.com/deccantrails/tourbooker/internal/catalog"
	"github.com/deccantrails/tourbooker/internal/ranking"
)

// SearchCache keeps serialized search results in Redis for a short TTL.
// A nil client disables the cache entirely, so callers never branch on
// whether Redis is configured.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewSearchCache(client *redis.Client, ttl time.Duration, logger logger.Logger) *SearchCache {
	return &SearchCache{client: client, ttl: ttl, logger: logger}
}

// Get unmarshals the cached value for key into dst. A miss, a disabled
// cache or a Redis error all report false; cache errors are logged, not
// propagated.
func (c *SearchCache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache get failed", logger.String("key", key), logger.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("cache entry corrupt", logger.String("key", key), logger.String("error", err.Error()))
		return false
	}
	return true
}

func (c *SearchCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", logger.String("key", key), logger.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", logger.String("key", key), logger.String("error", err.Error()))
	}
}

// SearchKey derives a stable cache key from the full search request.
func SearchKey(f catalog.Filter, opts ranking.Options, limit, offset int) string {
	payload, _ := json.Marshal(struct {
		Filter  catalog.Filter
		Ranking ranking.Options
		Limit   int
		Offset  int
	}{f, opts, limit, offset})
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("search:%s", hex.EncodeToString(sum[:8]))
}
