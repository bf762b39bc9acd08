package config

// Redis is used for distributed rate limiting and for caching catalog
// responses.  If the server cannot be reached at startup the client is
// nil and callers disable both features.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection parameters.  Host and Port take
// precedence over Addr when both are set.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT"`
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	TLS      bool   `env:"REDIS_TLS" env-default:"false"`
	// TLSInsecure skips server certificate verification.  Only for
	// self-signed development setups.
	TLSInsecure bool `env:"REDIS_TLS_INSECURE" env-default:"false"`
}

// Address returns the host:port to dial.
func (c RedisConfig) Address() string {
	if c.Host != "" && c.Port != "" {
		return c.Host + ":" + c.Port
	}
	if c.Addr == "" {
		return "localhost:6379"
	}
	return c.Addr
}

// TLSConfig returns nil when TLS is off.  Certificates are verified
// unless TLSInsecure is set.
func (c RedisConfig) TLSConfig() *tls.Config {
	if !c.TLS {
		return nil
	}
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.TLSInsecure,
	}
}

// NewRedisClient instantiates a Redis client from the environment.  The
// returned client is nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
	var c RedisConfig
	if err := cleanenv.ReadEnv(&c); err != nil {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:      c.Address(),
		Password:  c.Password,
		DB:        c.DB,
		TLSConfig: c.TLSConfig(),
	})
	// Ping the server with a short timeout.  Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
