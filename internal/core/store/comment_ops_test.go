package store

import (
	"errors"
	"testing"

	"github.com/inkpress/publishing-core/internal/core/domain"
)

// ---------------------------------------------------------------------------
// CreateComment
// ---------------------------------------------------------------------------

func TestCreateComment_ReaderMayComment(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	id, err := s.CreateComment("3", "1", "Nice article!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	comments := s.ArticleComments("1")
	last := comments[len(comments)-1]
	if last.ID != id || last.OwnerID != "3" || last.AuthorName != "Reader User" {
		t.Errorf("comment not attributed correctly: %+v", last)
	}
	if last.UpdatedAt != nil {
		t.Error("fresh comment must not carry an edited stamp")
	}
}

func TestCreateComment_AnonymousDeniedBeforeLookup(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	// Permission is checked first, so a missing article must not leak.
	_, err := s.CreateComment("", "no-such-article", "hi")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateComment_UnknownArticle(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	_, err := s.CreateComment("3", "no-such-article", "hi")
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestCreateComment_EmptyBodyRejected(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	_, err := s.CreateComment("3", "1", "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateComment / DeleteComment
// ---------------------------------------------------------------------------

func TestUpdateComment_OwnerEditStampsEdited(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	// Comment 1 belongs to the reader.
	if err := s.UpdateComment("3", "1", "Edited body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range s.ArticleComments("1") {
		if c.ID == "1" {
			if c.Body != "Edited body" {
				t.Errorf("body not updated: %q", c.Body)
			}
			if c.UpdatedAt == nil {
				t.Error("edited comment missing its edited stamp")
			}
			return
		}
	}
	t.Fatal("comment 1 not found")
}

func TestUpdateComment_NonOwnerIsDenied(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	// The writer has edit-own-comment only; comment 1 belongs to the reader.
	err := s.UpdateComment("2", "1", "hijacked")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUpdateComment_NotFoundBeforeUnauthorized(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	err := s.UpdateComment("3", "missing", "body")
	if !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound for ownership-scoped op, got %v", err)
	}
}

func TestDeleteComment_AdminRemovesAnyComment(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	if err := s.DeleteComment("1", "4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range s.ArticleComments("3") {
		if c.ID == "4" {
			t.Fatal("comment 4 still present")
		}
	}
}

func TestDeleteComment_OwnerRemovesOwn(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	if err := s.DeleteComment("3", "4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeleteComment("3", "5"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized deleting another user's comment, got %v", err)
	}
}
