package config

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates the Redis client used for offer validation caching.
func NewRedisClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
}
