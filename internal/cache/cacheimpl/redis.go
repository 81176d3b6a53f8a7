package cacheimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"github.com/orgball2608/social-post-fetcher/pkg/retry"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type Redis struct {
	client *redis.Client
	logger logger.Logger
}

var _ cache.Client = (*Redis)(nil)

func NewRedis(client *redis.Client, log logger.Logger) *Redis {
	return &Redis{
		client: client,
		logger: log.WithComponent("RedisCache"),
	}
}

// NewRedisClient builds a client from config and ties its connectivity check and Close to lc.
func NewRedisClient(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ping := func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}
			if err := retry.Do(ctx, log, "RedisPing", ping, retry.StartupConfig()); err != nil {
				// The cache degrades to misses, so a missing redis is not fatal.
				log.Error("Redis is unreachable, serving without cache", "addr", cfg.Cache.RedisAddr, "error", err)
				return nil
			}
			log.Info("Connected to redis", "addr", cfg.Cache.RedisAddr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("redis setex %s: ttl must be positive, got %s", key, ttl)
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis setex %s: %w", key, err)
	}
	return nil
}
