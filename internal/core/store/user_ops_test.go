package store

import (
	"errors"
	"testing"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

// ---------------------------------------------------------------------------
// RegisterUser
// ---------------------------------------------------------------------------

func TestRegisterUser_AssignsDefaultRoleAndSignsIn(t *testing.T) {
	s, _ := newTestStore(t)

	id, err := s.RegisterUser(ports.RegisterInput{Name: "Ana", Email: "ana@example.com", Secret: "s3cret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := s.GetUser(id)
	if err != nil {
		t.Fatalf("get new user: %v", err)
	}
	if u.Role != domain.RoleReader {
		t.Errorf("expected default role %q, got %q", domain.RoleReader, u.Role)
	}

	current, ok := s.CurrentUser()
	if !ok || current.ID != id {
		t.Error("registration did not sign the new user in")
	}
}

func TestRegisterUser_EmailConflictIsCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	addUser(s, "u1", "Taken", domain.RoleReader)

	_, err := s.RegisterUser(ports.RegisterInput{Name: "Other", Email: "TAKEN@Example.COM", Secret: "s3cret"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if got := len(s.ListUsers()); got != 1 {
		t.Errorf("failed registration must not add a user, have %d", got)
	}
}

func TestRegisterUser_RequiresAllFields(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.RegisterUser(ports.RegisterInput{Name: "  ", Email: "a@example.com", Secret: "x"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Authenticate / Logout
// ---------------------------------------------------------------------------

func TestAuthenticate_SuccessSetsSession(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	id, err := s.Authenticate("writer@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "2" {
		t.Errorf("expected user 2, got %q", id)
	}
	if current, ok := s.Session().Current(); !ok || current != "2" {
		t.Error("authentication did not set the session slot")
	}
}

func TestAuthenticate_SameErrorForUnknownEmailAndWrongSecret(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	_, errEmail := s.Authenticate("nobody@example.com", "password123")
	_, errSecret := s.Authenticate("writer@example.com", "wrong")

	if !errors.Is(errEmail, domain.ErrInvalidCredentials) || !errors.Is(errSecret, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", errEmail, errSecret)
	}
	if _, ok := s.Session().Current(); ok {
		t.Error("failed authentication must not set the session")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	if _, err := s.Authenticate("admin@example.com", "password123"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	s.Logout()
	if _, ok := s.Session().Current(); ok {
		t.Error("session still set after logout")
	}
}

// ---------------------------------------------------------------------------
// UpdateProfile
// ---------------------------------------------------------------------------

func TestUpdateProfile_KeepsAuthorNamesOnExistingContent(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	if err := s.UpdateProfile("2", ports.ProfileInput{Name: "New Name", Bio: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, _ := s.GetUser("2")
	if u.Name != "New Name" || u.Bio != "hi" {
		t.Errorf("profile not applied: %+v", u)
	}

	a, _ := s.GetArticle("1")
	if a.AuthorName != "Writer User" {
		t.Errorf("article author name rewritten to %q, want historical %q", a.AuthorName, "Writer User")
	}
}

func TestUpdateProfile_RejectsTakenEmail(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	err := s.UpdateProfile("2", ports.ProfileInput{Email: "Admin@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdateProfile_AnonymousIsUnauthorized(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	if err := s.UpdateProfile("", ports.ProfileInput{Name: "x"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateUserRole
// ---------------------------------------------------------------------------

func TestUpdateUserRole_RequiresManageUsersBeforeLookup(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	// A reader probing for a nonexistent user must learn nothing.
	err := s.UpdateUserRole("3", "no-such-user", domain.RoleWriter)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUpdateUserRole_RoleMustExist(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	err := s.UpdateUserRole("1", "3", "astronaut")
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUpdateUserRole_AdminPromotesReader(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	if err := s.UpdateUserRole("1", "3", domain.RoleWriter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ := s.GetUser("3")
	if u.Role != domain.RoleWriter {
		t.Errorf("role not updated, got %q", u.Role)
	}
}

// ---------------------------------------------------------------------------
// DeleteUser
// ---------------------------------------------------------------------------

func TestDeleteUser_CascadesArticlesCommentsAndTagCounts(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	// User 2 owns articles 1 and 3 and wrote comment 3 on article 2.
	if err := s.DeleteUser("1", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.GetUser("2"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Error("user 2 still present")
	}
	for _, articleID := range []string{"1", "3"} {
		if _, err := s.GetArticle(articleID); !errors.Is(err, domain.ErrArticleNotFound) {
			t.Errorf("owned article %s survived the cascade", articleID)
		}
	}
	// Comments on the deleted articles go with them; the user's own comment
	// on article 2 goes too.
	for _, c := range s.ArticleComments("2") {
		if c.OwnerID == "2" {
			t.Errorf("comment %s by deleted user survived", c.ID)
		}
	}
	checkTagInvariant(t, s)

	// React appeared only on user 2's articles.
	if got := tagCount(s, "React"); got != 0 {
		t.Errorf("React count after cascade = %d, want 0", got)
	}
	// JavaScript remains on article 2 only.
	if got := tagCount(s, "JavaScript"); got != 1 {
		t.Errorf("JavaScript count after cascade = %d, want 1", got)
	}
}

func TestDeleteUser_SelfDeletionClearsSession(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()

	s.Session().SetCurrent("1")
	if err := s.DeleteUser("1", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Session().Current(); ok {
		t.Error("session still points at the deleted user")
	}
}

func TestDeleteUser_WithoutPermissionChangesNothing(t *testing.T) {
	s, _ := newTestStore(t)
	s.Seed()
	before := snapshotState(s)

	err := s.DeleteUser("2", "3")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if after := snapshotState(s); after != before {
		t.Error("denied operation mutated state")
	}
}
