package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

// InitRedis creates the Redis client and checks the connection.
// RedisClient stays nil when Redis is disabled.
func InitRedis(ctx context.Context, config Config) error {
	if !config.RedisEnabled {
		Logger.Infow("redis disabled, progress responses will not be cached")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.GetRedisConnString(),
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	RedisClient = client
	return nil
}
