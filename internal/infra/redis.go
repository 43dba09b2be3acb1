// README: Redis client initialization for session storage.
package infra

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tripplanner/internal/config"
)

// NewRedis dials and pings the configured Redis; callers own Close.
func NewRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}
	return client, nil
}
