package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpress/publishing-core/internal/core/ports"
)

const collectionSnapshots = "snapshots"

// snapshotDoc is one persisted collection blob, keyed by collection name.
type snapshotDoc struct {
	ID   string `bson:"_id"`
	Blob []byte `bson:"blob"`
}

// SnapshotStore persists collection snapshots as singleton documents in a
// snapshots collection, one document per snapshot key.
type SnapshotStore struct {
	col *mongo.Collection
}

// NewSnapshotStore binds the store to the snapshots collection of db.
func NewSnapshotStore(db *mongo.Database) *SnapshotStore {
	return &SnapshotStore{col: db.Collection(collectionSnapshots)}
}

// Save upserts the snapshot document for key.
func (s *SnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": key},
		snapshotDoc{ID: key, Blob: blob},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("snapshot save %s: %w", key, err)
	}
	return nil
}

// Load returns the snapshot for key, or ports.ErrNoSnapshot when the
// document does not exist.
func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc snapshotDoc
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ports.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot load %s: %w", key, err)
	}
	return doc.Blob, nil
}
