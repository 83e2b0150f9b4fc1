package cache

import (
	"context"
	"fmt"
	"time"

	"cinebook/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis when an address is configured.
// It returns a nil client when Redis is not configured; callers degrade
// by disabling the draft store and the response cache.
func NewRedisClient(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Addr, err)
	}

	return client, nil
}
