package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

// CreateArticle publishes a new article. Requires create-article. Each tag
// name is created on first use (starting at zero) and its usage counter is
// incremented by exactly one, new or not.
func (s *Store) CreateArticle(actorID string, in ports.ArticleInput) (id string, err error) {
	defer func() { recordOutcome("create_article", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.actor(actorID)
	if !s.gate.Can(actor, domain.PermCreateArticle) {
		return "", domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Body) == "" {
		return "", fmt.Errorf("%w: title and body are required", domain.ErrValidation)
	}

	tags := dedupeTags(in.Tags)
	now := time.Now().UTC()
	a := &domain.Article{
		ID:         s.newID(),
		Title:      strings.TrimSpace(in.Title),
		Body:       in.Body,
		Tags:       tags,
		OwnerID:    actor.ID,
		AuthorName: actor.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.articles[a.ID] = a
	for _, name := range tags {
		s.bumpTagLocked(name, +1)
	}

	s.persistLocked(ports.SnapshotArticles, ports.SnapshotTags)
	s.notify.Post("Success", "Article published successfully!", "success")
	s.log.Info().Str("article_id", a.ID).Str("owner_id", actor.ID).Int("tags", len(tags)).Msg("article created")
	return a.ID, nil
}

// UpdateArticle replaces an article's title, body, and tag set. The article
// must exist before ownership can be resolved, so here not-found precedes
// unauthorized. Requires edit-any-article, or ownership plus
// edit-own-article. Tag counters move by the symmetric difference of the old
// and new sets; unchanged names are net-zero.
func (s *Store) UpdateArticle(actorID, articleID string, in ports.ArticleInput) (err error) {
	defer func() { recordOutcome("update_article", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[articleID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	if !s.gate.CanActOnOwned(s.actor(actorID), domain.PermEditAnyArticle, domain.PermEditOwnArticle, a.OwnerID) {
		return domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Body) == "" {
		return fmt.Errorf("%w: title and body are required", domain.ErrValidation)
	}

	newTags := dedupeTags(in.Tags)
	for _, old := range a.Tags {
		if !containsTag(newTags, old) {
			s.bumpTagLocked(old, -1)
		}
	}
	for _, name := range newTags {
		if !containsTag(a.Tags, name) {
			s.bumpTagLocked(name, +1)
		}
	}

	a.Title = strings.TrimSpace(in.Title)
	a.Body = in.Body
	a.Tags = newTags
	a.UpdatedAt = time.Now().UTC()

	s.persistLocked(ports.SnapshotArticles, ports.SnapshotTags)
	s.notify.Post("Success", "Article updated successfully!", "success")
	return nil
}

// DeleteArticle removes an article, its comments, and one usage count from
// each of its tags. Requires delete-any-article, or ownership plus
// delete-own-article.
func (s *Store) DeleteArticle(actorID, articleID string) (err error) {
	defer func() { recordOutcome("delete_article", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[articleID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	if !s.gate.CanActOnOwned(s.actor(actorID), domain.PermDeleteAnyArticle, domain.PermDeleteOwnArticle, a.OwnerID) {
		return domain.ErrUnauthorized
	}

	s.deleteArticleLocked(a)

	s.persistLocked(ports.SnapshotArticles, ports.SnapshotComments, ports.SnapshotTags)
	s.notify.Post("Success", "Article deleted successfully!", "success")
	s.log.Info().Str("article_id", articleID).Msg("article deleted")
	return nil
}

// deleteArticleLocked applies the full article cascade: tag decrements,
// dependent comment deletion, then the article itself. Caller holds the
// write lock and persists.
func (s *Store) deleteArticleLocked(a *domain.Article) {
	for _, name := range a.Tags {
		s.bumpTagLocked(name, -1)
	}
	for id, c := range s.comments {
		if c.ArticleID == a.ID {
			delete(s.comments, id)
		}
	}
	delete(s.articles, a.ID)
}

// IncrementViews bumps the view counter. Unauthenticated-safe: reading an
// article requires no permission.
func (s *Store) IncrementViews(articleID string) (err error) {
	defer func() { recordOutcome("increment_views", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[articleID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	a.Views++

	s.persistLocked(ports.SnapshotArticles)
	return nil
}

// ToggleLike bumps the like counter. There is no per-user like record, so
// repeated calls keep incrementing.
func (s *Store) ToggleLike(articleID string) (err error) {
	defer func() { recordOutcome("toggle_like", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[articleID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	a.Likes++

	s.persistLocked(ports.SnapshotArticles)
	return nil
}

// dedupeTags trims names, drops empties, and removes case-insensitive
// duplicates while preserving the first-seen spelling and order. The tag set
// must be duplicate-free or the usage counters would drift.
func dedupeTags(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := domain.NormalizeTagName(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func containsTag(names []string, name string) bool {
	for _, n := range names {
		if domain.EqualTagNames(n, name) {
			return true
		}
	}
	return false
}
