package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 6, cfg.Auth.PasswordMinLength)
	assert.Equal(t, 5*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.KafkaBroker)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head,")
	t.Setenv("CACHE_TTL", "1m")

	c := LoadCacheConfig()
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, c.Methods)
	assert.Equal(t, time.Minute, c.TTL)
}

func TestLoadRateLimitConfigNormalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	c := LoadRateLimitConfig()
	assert.Equal(t, 10, c.Capacity)
	assert.Equal(t, 1, c.RefillTokens)
	assert.Equal(t, 2*time.Second, c.RefillInterval)
	assert.Equal(t, 10*time.Second, c.TTL)
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "r:1", RedisConfig{Host: "r", Port: "1", Addr: "x:2"}.Address())
	assert.Equal(t, "x:2", RedisConfig{Addr: "x:2"}.Address())
	assert.Equal(t, "localhost:6379", RedisConfig{}.Address())
}

func TestRedisTLSConfig(t *testing.T) {
	assert.Nil(t, RedisConfig{}.TLSConfig())

	verified := RedisConfig{TLS: true}.TLSConfig()
	require.NotNil(t, verified)
	assert.False(t, verified.InsecureSkipVerify)

	assert.True(t, RedisConfig{TLS: true, TLSInsecure: true}.TLSConfig().InsecureSkipVerify)
}
