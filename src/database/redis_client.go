package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects to Redis for the background job queue. Returns nil when
// no URI is configured, so the server can run without a worker.
func NewRedis(ctx context.Context, uri string) (*redis.Client, error) {
	if uri == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: uri,
		DB:   0,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return client, nil
}
