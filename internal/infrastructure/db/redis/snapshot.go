package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/inkpress/publishing-core/internal/core/ports"
)

const keyPrefix = "publishing:snapshot:"

// SnapshotStore persists collection snapshots as Redis string values.
// Key format: publishing:snapshot:<collection>
type SnapshotStore struct {
	client *redis.Client
}

// NewSnapshotStore wraps an established Redis client.
func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// Save overwrites the snapshot for key. Snapshots have no TTL; they are the
// durable state, not a cache.
func (s *SnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("snapshot save %s: %w", key, err)
	}
	return nil
}

// Load returns the snapshot for key, or ports.ErrNoSnapshot when the key has
// never been written.
func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot load %s: %w", key, err)
	}
	return blob, nil
}
