package store

import (
	"context"
	"testing"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

// memorySnapshotter backs LoadSnapshots with the blobs a memorySink captured.
type memorySnapshotter struct {
	blobs map[string][]byte
}

func (m *memorySnapshotter) Save(_ context.Context, key string, blob []byte) error {
	m.blobs[key] = blob
	return nil
}

func (m *memorySnapshotter) Load(_ context.Context, key string) ([]byte, error) {
	blob, ok := m.blobs[key]
	if !ok {
		return nil, ports.ErrNoSnapshot
	}
	return blob, nil
}

// ---------------------------------------------------------------------------
// Persist and restore
// ---------------------------------------------------------------------------

func TestSnapshots_RoundTripRestoresFullState(t *testing.T) {
	src, sink := newTestStore(t)
	src.Seed()

	// Mutate past the seed so the round trip proves more than seeding.
	writerArticle := mustCreateArticle(t, src, "2", "Round Trip", []string{"Go"})
	if _, err := src.CreateComment("3", writerArticle, "survives restarts"); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := src.DefineRole("1", "moderator", []domain.Permission{domain.PermDeleteAnyComment}); err != nil {
		t.Fatalf("define role: %v", err)
	}
	src.Session().SetCurrent("2")
	src.mu.Lock()
	src.persistLocked(ports.SnapshotUsers, ports.SnapshotArticles, ports.SnapshotComments,
		ports.SnapshotTags, ports.SnapshotRoles, ports.SnapshotCurrentUser)
	src.mu.Unlock()

	sink.mu.Lock()
	snaps := &memorySnapshotter{blobs: sink.blobs}
	sink.mu.Unlock()

	dst, _ := newTestStore(t)
	if err := dst.LoadSnapshots(context.Background(), snaps); err != nil {
		t.Fatalf("load snapshots: %v", err)
	}

	if got, want := snapshotState(dst), snapshotState(src); got != want {
		t.Errorf("restored state differs from source:\n got: %s\nwant: %s", got, want)
	}
	if !dst.Registry().Exists("moderator") {
		t.Error("custom role lost in round trip")
	}
	if current, ok := dst.Session().Current(); !ok || current != "2" {
		t.Error("session slot not restored")
	}
	checkTagInvariant(t, dst)
}

func TestLoadSnapshots_MissingCollectionFallsBackToSeed(t *testing.T) {
	src, sink := newTestStore(t)
	src.Seed()
	src.mu.Lock()
	// Deliberately drop one of the four entity collections.
	src.persistLocked(ports.SnapshotUsers, ports.SnapshotArticles, ports.SnapshotComments)
	src.mu.Unlock()

	dst, _ := newTestStore(t)
	if err := dst.LoadSnapshots(context.Background(), &memorySnapshotter{blobs: sink.blobs}); err != nil {
		t.Fatalf("load snapshots: %v", err)
	}

	// A partial entity snapshot is rejected wholesale.
	if got := len(dst.ListTags()); got != 7 {
		t.Errorf("expected the 7 seed tags, got %d", got)
	}
	checkTagInvariant(t, dst)
}

func TestLoadSnapshots_CorruptBlobFallsBackToSeed(t *testing.T) {
	src, sink := newTestStore(t)
	src.Seed()
	src.mu.Lock()
	src.persistLocked(ports.SnapshotUsers, ports.SnapshotArticles, ports.SnapshotComments, ports.SnapshotTags)
	src.mu.Unlock()
	sink.blobs[ports.SnapshotArticles] = []byte("{not json")

	dst, _ := newTestStore(t)
	if err := dst.LoadSnapshots(context.Background(), &memorySnapshotter{blobs: sink.blobs}); err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	if got := len(dst.ListArticles(ports.ListArticlesFilter{})); got != 3 {
		t.Errorf("expected the 3 seed articles, got %d", got)
	}
}

func TestLoadSnapshots_StaleSessionIsDropped(t *testing.T) {
	snaps := &memorySnapshotter{blobs: map[string][]byte{
		ports.SnapshotCurrentUser: []byte(`{"id":"ghost"}`),
	}}

	dst, _ := newTestStore(t)
	if err := dst.LoadSnapshots(context.Background(), snaps); err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	if _, ok := dst.Session().Current(); ok {
		t.Error("session restored for a user that no longer exists")
	}
}

func TestLoadSnapshots_RestoreHealsReservedRoles(t *testing.T) {
	snaps := &memorySnapshotter{blobs: map[string][]byte{
		ports.SnapshotRoles: []byte(`{"custom":["create-article"]}`),
	}}

	dst, _ := newTestStore(t)
	if err := dst.LoadSnapshots(context.Background(), snaps); err != nil {
		t.Fatalf("load snapshots: %v", err)
	}

	reg := dst.Registry()
	if !reg.Exists("custom") {
		t.Error("persisted custom role not restored")
	}
	if !reg.Exists(domain.RoleAdmin) || !reg.Exists(domain.RoleReader) {
		t.Error("reserved roles missing after restore")
	}
	if !reg.Has(domain.RoleAdmin, domain.PermManageRoles) {
		t.Error("healed admin role lacks its default grants")
	}
}
