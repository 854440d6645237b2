package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes the client beyond what the URL carries.
type Options struct {
	DialTimeout time.Duration
	PoolSize    int
}

// NewClient creates a new Redis client and verifies the connection.
func NewClient(ctx context.Context, redisURL string, opts ...Options) (*redis.Client, error) {
	parsed, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	for _, o := range opts {
		if o.DialTimeout > 0 {
			parsed.DialTimeout = o.DialTimeout
		}
		if o.PoolSize > 0 {
			parsed.PoolSize = o.PoolSize
		}
	}

	client := redis.NewClient(parsed)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
