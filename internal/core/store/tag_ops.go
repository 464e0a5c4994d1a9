package store

import (
	"fmt"
	"strings"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

// CreateTag explicitly creates a tag with a zero usage count. Requires
// manage-tags. Names are unique case-insensitively.
func (s *Store) CreateTag(actorID, name string) (id string, err error) {
	defer func() { recordOutcome("create_tag", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Can(s.actor(actorID), domain.PermManageTags) {
		return "", domain.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: tag name is required", domain.ErrValidation)
	}
	if s.tagByName(name) != nil {
		return "", domain.ErrTagExists
	}

	t := &domain.Tag{ID: s.newID(), Name: name}
	s.tags[t.ID] = t

	s.persistLocked(ports.SnapshotTags)
	s.log.Info().Str("tag_id", t.ID).Str("name", name).Msg("tag created")
	return t.ID, nil
}

// DeleteTag removes a tag and detaches its name from every article that
// references it. No counter adjustments happen: the counter disappears with
// the tag. Requires manage-tags.
func (s *Store) DeleteTag(actorID, tagID string) (err error) {
	defer func() { recordOutcome("delete_tag", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Can(s.actor(actorID), domain.PermManageTags) {
		return domain.ErrUnauthorized
	}
	t, ok := s.tags[tagID]
	if !ok {
		return domain.ErrTagNotFound
	}

	for _, a := range s.articles {
		a.Tags = removeTag(a.Tags, t.Name)
	}
	delete(s.tags, tagID)

	s.persistLocked(ports.SnapshotArticles, ports.SnapshotTags)
	s.notify.Post("Success", "Tag deleted successfully!", "success")
	s.log.Info().Str("tag_id", tagID).Str("name", t.Name).Msg("tag deleted")
	return nil
}

// bumpTagLocked moves a tag's usage counter by delta, creating the tag on a
// positive delta for a name not yet known. This is the only code path that
// touches Tag.Count; every article tag-set change funnels through it in
// lock-step. Caller holds the write lock.
func (s *Store) bumpTagLocked(name string, delta int64) {
	t := s.tagByName(name)
	if t == nil {
		if delta <= 0 {
			return
		}
		t = &domain.Tag{ID: s.newID(), Name: strings.TrimSpace(name)}
		s.tags[t.ID] = t
	}
	t.Count += delta
	if t.Count < 0 {
		t.Count = 0
	}
}

func removeTag(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if !domain.EqualTagNames(n, name) {
			out = append(out, n)
		}
	}
	return out
}
