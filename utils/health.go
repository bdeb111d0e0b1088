package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func checkHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	redisHealthy := len(redisClients) > 0
	for _, client := range redisClients {
		if client == nil || client.Ping(ctx).Err() != nil {
			redisHealthy = false
		}
	}
	mongoHealthy := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil

	mu.Lock()
	currentHealth = HealthStatus{Mongo: mongoHealthy, Redis: redisHealthy, CheckedAt: time.Now()}
	mu.Unlock()
}

// StartHealthMonitor performs periodic health checks and updates in-memory state until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	checkHealth(ctx, redisClients, mongoClient)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				checkHealth(ctx, redisClients, mongoClient)
			}
		}
	}()
}
