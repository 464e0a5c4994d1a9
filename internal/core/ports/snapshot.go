package ports

import (
	"context"
	"errors"
)

// Snapshot keys. Each holds the full serialized contents of one collection or
// singleton; the store rewrites the affected keys after every successful
// mutation.
const (
	SnapshotUsers       = "users"
	SnapshotArticles    = "articles"
	SnapshotComments    = "comments"
	SnapshotTags        = "tags"
	SnapshotCurrentUser = "currentUser"
	SnapshotRoles       = "rolePermissions"
)

// ErrNoSnapshot is returned by Load when a key has never been written.
var ErrNoSnapshot = errors.New("snapshot not found")

// Snapshotter is the key-value persistence collaborator. Persistence is
// best-effort with respect to the store: a failed Save never rolls back the
// in-memory mutation.
type Snapshotter interface {
	Save(ctx context.Context, key string, blob []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// SnapshotSink accepts serialized collection snapshots without blocking the
// caller. Implementations must preserve per-key write ordering; an older
// snapshot overwriting a newer one would silently lose mutations.
type SnapshotSink interface {
	Enqueue(key string, blob []byte)
}
