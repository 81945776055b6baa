package config

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config captures process-level configuration. Values come from the
// environment so main stays lean; empty PostgresURL selects the
// in-memory stores for local development.
type Config struct {
	Addr string

	// PostgresURL enables the durable record, sequence, and audit
	// stores. Empty means in-memory everything.
	PostgresURL string

	// UploadDir is where the disk blob store keeps driver documents.
	// Empty selects the in-memory blob store.
	UploadDir string

	// PublicBaseURL prefixes document URLs returned to clients.
	PublicBaseURL string

	Redis RedisConfig
}

// RedisConfig configures the optional Redis-backed identifier issuer.
// A blank URL leaves Redis out of the deployment entirely.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Options renders the URL into go-redis connection options with the
// pool and timeout settings applied on top of whatever the URL encodes.
func (c RedisConfig) Options() (*redis.Options, error) {
	opts, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = c.PoolSize
	opts.MinIdleConns = c.MinIdleConns
	opts.DialTimeout = c.DialTimeout
	opts.ReadTimeout = c.ReadTimeout
	opts.WriteTimeout = c.WriteTimeout
	return opts, nil
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("DRIVERGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	base := os.Getenv("DRIVERGATE_PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	return Config{
		Addr:          addr,
		PostgresURL:   os.Getenv("DRIVERGATE_POSTGRES_URL"),
		UploadDir:     os.Getenv("DRIVERGATE_UPLOAD_DIR"),
		PublicBaseURL: base,
		Redis: RedisConfig{
			URL:          os.Getenv("DRIVERGATE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}
