package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"okclinic/models"

	"github.com/go-redis/redis/v8"
)

const (
	AuthCachePrefix = "authUser:"
	AuthCacheTTL    = 5 * time.Minute
)

// SaveAuthIdentity caches the identity behind a token so authenticated
// requests can skip the database lookup.
func SaveAuthIdentity(ctx context.Context, client *redis.Client, identity models.UserSummary) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal auth identity: %w", err)
	}
	if err := client.Set(ctx, AuthCachePrefix+identity.ID, data, AuthCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache auth identity: %w", err)
	}
	return nil
}

// GetAuthIdentity returns the cached identity, or nil on a cache miss.
func GetAuthIdentity(ctx context.Context, client *redis.Client, userID string) (*models.UserSummary, error) {
	data, err := client.Get(ctx, AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var identity models.UserSummary
	if err := json.Unmarshal([]byte(data), &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth identity: %w", err)
	}
	return &identity, nil
}

// InvalidateAuthIdentity drops a cached identity after the account changes.
// A nil client is a no-op.
func InvalidateAuthIdentity(ctx context.Context, client *redis.Client, userID string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, AuthCachePrefix+userID).Err()
}
