package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when the server is unreachable; callers degrade by
// running without the latest-position cache.
func NewRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: "",
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
