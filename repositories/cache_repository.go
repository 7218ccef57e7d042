package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductListKey  = "products_list"
	CampaignListKey = "campaigns_list"
)

var errStaleSnapshot = errors.New("cache: snapshot predates invalidation")

// ListCache is a best-effort JSON cache for list snapshots. A nil client
// turns every call into a miss, so callers never need to check.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewListCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *ListCache {
	return &ListCache{client: client, ttl: ttl, log: log}
}

// Get decodes the cached value for key into dest and reports whether it was a hit.
func (c *ListCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	cached, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		c.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Generation returns the invalidation counter for key. Callers read it before
// loading the snapshot they later pass to Set.
func (c *ListCache) Generation(ctx context.Context, key string) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	gen, err := c.client.Get(ctx, generationKey(key)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn("cache generation read failed", zap.String("key", key), zap.Error(err))
	}
	return gen
}

// Set stores value under key unless key was invalidated after gen was read.
// The check and the write run in one WATCH transaction, so a snapshot loaded
// before a concurrent write never replaces the invalidation.
func (c *ListCache) Set(ctx context.Context, key string, gen int64, value any) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	genKey := generationKey(key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("cache write skipped, key invalidated meanwhile", zap.String("key", key), zap.Int64("generation", gen))
	default:
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the cached keys and bumps their generations.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, generationKey(key))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		c.log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func generationKey(key string) string {
	return key + ":gen"
}
