package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil when Redis is not configured or not reachable;
// callers then run without the list cache.
func ConnectRedis(ctx context.Context, cfg *RedisConfig, log *zap.Logger) *redis.Client {
	var opt *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Warn("failed to parse Redis URL, running without cache", zap.Error(err))
			return nil
		}
		opt = parsed
	case cfg.Addr != "":
		opt = &redis.Options{Addr: cfg.Addr, Password: cfg.Password}
	default:
		log.Info("redis not configured, running without cache")
		return nil
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis connection failed, running without cache", zap.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("redis connected", zap.String("addr", opt.Addr))
	return client
}
