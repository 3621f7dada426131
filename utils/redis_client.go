package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quillhub/quill/config"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedis returns a singleton Redis client when the configured server is
// reachable, or nil so callers fall back to in-memory state.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.Get()
		client := redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			if Sugar != nil {
				Sugar.Warnf("redis unreachable, sessions fall back to memory: %v", err)
			}
			_ = client.Close()
			return
		}
		redisClient = client
	})
	return redisClient
}
