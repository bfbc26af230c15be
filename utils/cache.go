// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"nataliestudio/config"
)

// SnapshotClient is the Redis client backing the shared appointment snapshot.
var SnapshotClient *redis.Client

// InitSnapshotCache connects to the Redis DB configured for snapshots.
func InitSnapshotCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSnapshotDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Snapshot): %w", err)
	}
	SnapshotClient = client
	return nil
}

// GetSnapshotClient returns the snapshot client, connecting on first use.
func GetSnapshotClient() (*redis.Client, error) {
	if SnapshotClient == nil {
		if err := InitSnapshotCache(); err != nil {
			return nil, err
		}
	}
	return SnapshotClient, nil
}
