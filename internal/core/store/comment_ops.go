package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

// CreateComment adds a comment under an article. Requires create-comment,
// checked before any lookup since no ownership is involved.
func (s *Store) CreateComment(actorID, articleID, body string) (id string, err error) {
	defer func() { recordOutcome("create_comment", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.actor(actorID)
	if !s.gate.Can(actor, domain.PermCreateComment) {
		return "", domain.ErrUnauthorized
	}
	if _, ok := s.articles[articleID]; !ok {
		return "", domain.ErrArticleNotFound
	}
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("%w: comment body is required", domain.ErrValidation)
	}

	c := &domain.Comment{
		ID:         s.newID(),
		ArticleID:  articleID,
		OwnerID:    actor.ID,
		AuthorName: actor.Name,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	s.comments[c.ID] = c

	s.persistLocked(ports.SnapshotComments)
	s.notify.Post("Success", "Comment added successfully!", "success")
	return c.ID, nil
}

// UpdateComment replaces a comment's body and stamps it as edited. The
// comment must exist before ownership can be resolved, so not-found precedes
// unauthorized. Requires edit-any-comment, or ownership plus
// edit-own-comment.
func (s *Store) UpdateComment(actorID, commentID, body string) (err error) {
	defer func() { recordOutcome("update_comment", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok {
		return domain.ErrCommentNotFound
	}
	if !s.gate.CanActOnOwned(s.actor(actorID), domain.PermEditAnyComment, domain.PermEditOwnComment, c.OwnerID) {
		return domain.ErrUnauthorized
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: comment body is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	c.Body = body
	c.UpdatedAt = &now

	s.persistLocked(ports.SnapshotComments)
	return nil
}

// DeleteComment removes a comment. Requires delete-any-comment, or ownership
// plus delete-own-comment.
func (s *Store) DeleteComment(actorID, commentID string) (err error) {
	defer func() { recordOutcome("delete_comment", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok {
		return domain.ErrCommentNotFound
	}
	if !s.gate.CanActOnOwned(s.actor(actorID), domain.PermDeleteAnyComment, domain.PermDeleteOwnComment, c.OwnerID) {
		return domain.ErrUnauthorized
	}

	delete(s.comments, commentID)

	s.persistLocked(ports.SnapshotComments)
	s.notify.Post("Success", "Comment deleted successfully!", "success")
	return nil
}
