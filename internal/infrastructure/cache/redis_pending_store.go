package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"vidhub/internal/domain/repositories"

	"github.com/go-redis/redis/v8"
)

// PendingKey is the hash holding parked asset-ready events, one field per
// upload handle.
const PendingKey = "webhook:pending"

type redisPendingStore struct {
	rdb *redis.Client
	key string
}

func NewRedisPendingStore(rdb *redis.Client) repositories.PendingStore {
	return &redisPendingStore{rdb: rdb, key: PendingKey}
}

func (s *redisPendingStore) Park(ctx context.Context, ev repositories.ParkedEvent) error {
	serialized, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serialize parked event: %w", err)
	}
	// HSETNX keeps the first parking time for redeliveries of the same event.
	return s.rdb.HSetNX(ctx, s.key, ev.UploadHandle, serialized).Err()
}

func (s *redisPendingStore) List(ctx context.Context) ([]repositories.ParkedEvent, error) {
	raw, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	out := make([]repositories.ParkedEvent, 0, len(raw))
	for handle, val := range raw {
		var ev repositories.ParkedEvent
		if err := json.Unmarshal([]byte(val), &ev); err != nil {
			// Unreadable entries would never drain; drop them.
			s.rdb.HDel(ctx, s.key, handle)
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *redisPendingStore) Remove(ctx context.Context, handle string) error {
	return s.rdb.HDel(ctx, s.key, handle).Err()
}
