// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"okclinic/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// CodeCacheClient holds signup and password-reset verification codes.
	CodeCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func pingRedis(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

// InitRedis connects both Redis clients. It returns the first connection error
// so callers can decide whether a missing Redis is fatal.
func InitRedis() error {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	if err := pingRedis(AuthCacheClient); err != nil {
		log.Printf("Failed to connect to Redis (Auth Cache): %v", err)
		AuthCacheClient = nil
		return err
	}
	CodeCacheClient = newRedisClient(config.AppConfig.RedisCodeDB)
	if err := pingRedis(CodeCacheClient); err != nil {
		log.Printf("Failed to connect to Redis (Codes): %v", err)
		CodeCacheClient = nil
		return err
	}
	return nil
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil when Redis is unavailable.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// GetCodeCacheClient returns the Redis client for verification codes, or nil when Redis is unavailable.
func GetCodeCacheClient() *redis.Client {
	return CodeCacheClient
}

// CloseRedis closes any open clients.
func CloseRedis() {
	for _, c := range []*redis.Client{AuthCacheClient, CodeCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
