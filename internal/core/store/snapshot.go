package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

// currentUserBlob is the persisted shape of the session singleton.
type currentUserBlob struct {
	ID string `json:"id,omitempty"`
}

// persistLocked serializes the named collections and hands them to the sink.
// Must be called with the write lock held so every blob reflects exactly the
// state the mutation committed; the sink itself does the slow work off the
// caller's path.
func (s *Store) persistLocked(keys ...string) {
	if s.sink == nil {
		return
	}
	for _, key := range keys {
		blob, err := s.marshalLocked(key)
		if err != nil {
			// Marshal failures are programming errors, but they still must
			// not affect the committed mutation.
			s.log.Error().Err(err).Str("collection", key).Msg("snapshot marshal failed")
			continue
		}
		s.sink.Enqueue(key, blob)
	}
}

func (s *Store) marshalLocked(key string) ([]byte, error) {
	switch key {
	case ports.SnapshotUsers:
		return marshalSorted(s.users, func(u *domain.User) string { return u.ID })
	case ports.SnapshotArticles:
		return marshalSorted(s.articles, func(a *domain.Article) string { return a.ID })
	case ports.SnapshotComments:
		return marshalSorted(s.comments, func(c *domain.Comment) string { return c.ID })
	case ports.SnapshotTags:
		return marshalSorted(s.tags, func(t *domain.Tag) string { return t.ID })
	case ports.SnapshotCurrentUser:
		id, _ := s.session.Current()
		return json.Marshal(currentUserBlob{ID: id})
	case ports.SnapshotRoles:
		return json.Marshal(s.reg.Export())
	default:
		return nil, fmt.Errorf("unknown snapshot key %q", key)
	}
}

// marshalSorted renders a collection as a JSON array in stable id order so
// identical states produce identical blobs.
func marshalSorted[T any](m map[string]*T, id func(*T) string) ([]byte, error) {
	items := make([]*T, 0, len(m))
	for _, v := range m {
		items = append(items, v)
	}
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
	return json.Marshal(items)
}

// LoadSnapshots restores state from the persistence backend. The four entity
// collections are restored all-or-nothing: if any key is missing or
// unparsable the whole entity state falls back to the built-in seed, since a
// partial mix could violate cross-collection invariants. Role grants and the
// session slot restore independently, falling back to the registry defaults
// and an anonymous session.
func (s *Store) LoadSnapshots(ctx context.Context, snaps ports.Snapshotter) error {
	if snaps == nil {
		return errors.New("load snapshots: nil snapshotter")
	}

	var (
		users    []*domain.User
		articles []*domain.Article
		comments []*domain.Comment
		tags     []*domain.Tag
	)
	complete := loadKey(ctx, snaps, s.log, ports.SnapshotUsers, &users) &&
		loadKey(ctx, snaps, s.log, ports.SnapshotArticles, &articles) &&
		loadKey(ctx, snaps, s.log, ports.SnapshotComments, &comments) &&
		loadKey(ctx, snaps, s.log, ports.SnapshotTags, &tags)

	var grants map[string][]domain.Permission
	haveGrants := loadKey(ctx, snaps, s.log, ports.SnapshotRoles, &grants)

	var current currentUserBlob
	haveCurrent := loadKey(ctx, snaps, s.log, ports.SnapshotCurrentUser, &current)

	s.mu.Lock()
	if complete {
		s.users = make(map[string]*domain.User, len(users))
		for _, u := range users {
			s.users[u.ID] = u
		}
		s.articles = make(map[string]*domain.Article, len(articles))
		for _, a := range articles {
			s.articles[a.ID] = a
		}
		s.comments = make(map[string]*domain.Comment, len(comments))
		for _, c := range comments {
			s.comments[c.ID] = c
		}
		s.tags = make(map[string]*domain.Tag, len(tags))
		for _, t := range tags {
			s.tags[t.ID] = t
		}
	} else {
		s.seedLocked()
	}
	nUsers, nArticles, nComments, nTags := len(s.users), len(s.articles), len(s.comments), len(s.tags)
	s.mu.Unlock()

	if haveGrants {
		s.reg.Restore(grants)
	}

	if haveCurrent && current.ID != "" {
		// Only honor a persisted session that still resolves to a user.
		s.mu.RLock()
		_, ok := s.users[current.ID]
		s.mu.RUnlock()
		if ok {
			s.session.SetCurrent(current.ID)
		}
	}

	s.log.Info().
		Bool("from_snapshot", complete).
		Int("users", nUsers).
		Int("articles", nArticles).
		Int("comments", nComments).
		Int("tags", nTags).
		Msg("store state loaded")
	return nil
}

// loadKey fetches and decodes one snapshot key. Missing and unparsable
// values both report false: callers fall back to deterministic defaults
// rather than partially trusting the backend.
func loadKey[T any](ctx context.Context, snaps ports.Snapshotter, log zerolog.Logger, key string, into *T) bool {
	blob, err := snaps.Load(ctx, key)
	if errors.Is(err, ports.ErrNoSnapshot) {
		return false
	}
	if err != nil {
		log.Warn().Err(err).Str("collection", key).Msg("snapshot load failed, using defaults")
		return false
	}
	if err := json.Unmarshal(blob, into); err != nil {
		log.Warn().Err(err).Str("collection", key).Msg("snapshot unparsable, using defaults")
		return false
	}
	return true
}
