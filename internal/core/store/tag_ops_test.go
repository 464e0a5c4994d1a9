package store

import (
	"errors"
	"testing"

	"github.com/inkpress/publishing-core/internal/core/domain"
)

// ---------------------------------------------------------------------------
// CreateTag
// ---------------------------------------------------------------------------

func TestCreateTag_StartsAtZero(t *testing.T) {
	s, _ := newTestStore(t)
	addUser(s, "a1", "Admin", domain.RoleAdmin)

	if _, err := s.CreateTag("a1", "Databases"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tagCount(s, "Databases"); got != 0 {
		t.Errorf("new tag count = %d, want 0", got)
	}
}

func TestCreateTag_DuplicateNameCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	addUser(s, "a1", "Admin", domain.RoleAdmin)

	if _, err := s.CreateTag("a1", "Go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.CreateTag("a1", "go"); !errors.Is(err, domain.ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}

func TestCreateTag_RequiresManageTags(t *testing.T) {
	s, _ := newTestStore(t)
	addUser(s, "w1", "Writer", domain.RoleWriter)

	if _, err := s.CreateTag("w1", "Go"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteTag
// ---------------------------------------------------------------------------

func TestDeleteTag_DetachesFromArticlesWithoutTouchingOtherCounts(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	// Tag 2 is JavaScript, referenced by all three articles.
	if err := s.DeleteTag("1", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tagCount(s, "JavaScript"); got != -1 {
		t.Error("deleted tag still listed")
	}
	for _, articleID := range []string{"1", "2", "3"} {
		a, _ := s.GetArticle(articleID)
		if a.HasTag("JavaScript") {
			t.Errorf("article %s still carries the deleted tag", articleID)
		}
	}
	// Remaining counters are untouched and still consistent.
	if got := tagCount(s, "React"); got != 2 {
		t.Errorf("React count = %d, want 2", got)
	}
	checkTagInvariant(t, s)
}

func TestDeleteTag_PermissionBeforeLookup(t *testing.T) {
	s, _ := newTestStore(t)
	addUser(s, "r1", "Reader", domain.RoleReader)

	if err := s.DeleteTag("r1", "no-such-tag"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDeleteTag_UnknownTag(t *testing.T) {
	s, _ := newTestStore(t)
	addUser(s, "a1", "Admin", domain.RoleAdmin)

	if err := s.DeleteTag("a1", "no-such-tag"); !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}
