package realtime

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/edithub/edithub-api/internal/config"
)

// NewRedis creates the Redis client shared by upload reservations and the hub.
func NewRedis(cfg config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)", cfg.RedisAddr)
	return rdb
}
