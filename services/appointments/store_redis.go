package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"nataliestudio/models"
)

// DefaultSnapshotKey is the Redis key holding the appointment snapshot.
const DefaultSnapshotKey = "nataliestudio:appointments:snapshot"

// RedisStore keeps the snapshot as one JSON document in Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]models.Appointment, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load appointment snapshot: %w", err)
	}
	var appts []models.Appointment
	if err := json.Unmarshal(data, &appts); err != nil {
		return nil, false, fmt.Errorf("failed to parse appointment snapshot: %w", err)
	}
	return appts, true, nil
}

func (s *RedisStore) Save(ctx context.Context, appts []models.Appointment) error {
	if appts == nil {
		appts = []models.Appointment{}
	}
	data, err := json.Marshal(appts)
	if err != nil {
		return fmt.Errorf("failed to marshal appointment snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store appointment snapshot: %w", err)
	}
	return nil
}
