// Package redis owns the shared go-redis client. Only the identifier
// issuer uses Redis, so the whole dependency is optional: deployments
// without DRIVERGATE_REDIS_URL never dial it.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"drivergate/internal/platform/config"
)

// Client wraps *redis.Client so callers get a health check without
// importing go-redis directly.
type Client struct {
	*redis.Client
}

// New dials Redis per cfg and verifies the connection before handing it
// out. A blank URL yields a nil client, which callers treat as the
// feature being off.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection still answers.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
