package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

// RegisterUser creates an account with the default role and signs it in.
// Email uniqueness is case-insensitive.
func (s *Store) RegisterUser(in ports.RegisterInput) (id string, err error) {
	defer func() { recordOutcome("register_user", err) }()

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Secret == "" {
		return "", fmt.Errorf("%w: name, email, and secret are required", domain.ErrValidation)
	}
	if s.hasher == nil {
		return "", fmt.Errorf("%w: no secret hasher configured", domain.ErrValidation)
	}

	// Hash outside the lock; bcrypt is deliberately slow.
	hash, hashErr := s.hasher.Hash(in.Secret)
	if hashErr != nil {
		return "", fmt.Errorf("hash secret: %w", hashErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByEmail(in.Email) != nil {
		return "", domain.ErrEmailTaken
	}

	u := &domain.User{
		ID:         s.newID(),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		SecretHash: hash,
		Role:       domain.RoleReader,
		Bio:        in.Bio,
		CreatedAt:  time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.session.SetCurrent(u.ID)

	s.persistLocked(ports.SnapshotUsers, ports.SnapshotCurrentUser)
	s.notify.Post("Success", "Account created successfully!", "success")
	s.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("user registered")
	return u.ID, nil
}

// Authenticate verifies credentials and signs the user in. It never reveals
// whether the email or the secret was wrong.
func (s *Store) Authenticate(email, secret string) (id string, err error) {
	defer func() { recordOutcome("authenticate", err) }()

	if email == "" || secret == "" || s.hasher == nil {
		return "", domain.ErrInvalidCredentials
	}

	s.mu.RLock()
	u := s.userByEmail(email)
	var hash string
	if u != nil {
		id, hash = u.ID, u.SecretHash
	}
	s.mu.RUnlock()

	if u == nil || !s.hasher.Verify(hash, secret) {
		return "", domain.ErrInvalidCredentials
	}

	s.session.SetCurrent(id)

	s.mu.Lock()
	s.persistLocked(ports.SnapshotCurrentUser)
	s.mu.Unlock()

	s.notify.Post("Success", "Logged in successfully!", "success")
	s.log.Info().Str("user_id", id).Msg("user authenticated")
	return id, nil
}

// Logout clears the current actor.
func (s *Store) Logout() {
	s.session.Clear()

	s.mu.Lock()
	s.persistLocked(ports.SnapshotCurrentUser)
	s.mu.Unlock()

	s.notify.Post("Success", "Logged out successfully!", "success")
}

// UpdateProfile lets a signed-in user edit their own name, email, and bio.
// Renaming does not rewrite the author name captured on existing articles or
// comments; those are historical snapshots.
func (s *Store) UpdateProfile(actorID string, in ports.ProfileInput) (err error) {
	defer func() { recordOutcome("update_profile", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.actor(actorID)
	if u == nil {
		return domain.ErrUnauthorized
	}

	if email := strings.TrimSpace(in.Email); email != "" && !strings.EqualFold(email, u.Email) {
		if s.userByEmail(email) != nil {
			return domain.ErrEmailTaken
		}
		u.Email = email
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	u.Bio = in.Bio

	s.persistLocked(ports.SnapshotUsers)
	s.notify.Post("Success", "Profile updated successfully!", "success")
	return nil
}

// UpdateUserRole assigns a different role to a user. Requires manage-users;
// the role must exist in the registry. Changing one's own role is allowed.
func (s *Store) UpdateUserRole(actorID, userID, role string) (err error) {
	defer func() { recordOutcome("update_user_role", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Can(s.actor(actorID), domain.PermManageUsers) {
		return domain.ErrUnauthorized
	}
	if !s.reg.Exists(role) {
		return domain.ErrRoleNotFound
	}
	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}

	u.Role = role

	s.persistLocked(ports.SnapshotUsers)
	s.notify.Post("Success", "User role updated successfully!", "success")
	s.log.Info().Str("user_id", userID).Str("role", role).Msg("user role updated")
	return nil
}

// DeleteUser removes a user and everything they own: each of their articles
// goes through the full article cascade (tag decrements plus comment
// deletion), then their remaining comments on other articles are removed.
// Requires manage-users. Deleting the current actor clears the session.
func (s *Store) DeleteUser(actorID, userID string) (err error) {
	defer func() { recordOutcome("delete_user", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Can(s.actor(actorID), domain.PermManageUsers) {
		return domain.ErrUnauthorized
	}
	if _, ok := s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}

	for _, a := range s.articles {
		if a.OwnerID == userID {
			s.deleteArticleLocked(a)
		}
	}
	for id, c := range s.comments {
		if c.OwnerID == userID {
			delete(s.comments, id)
		}
	}
	delete(s.users, userID)

	if current, ok := s.session.Current(); ok && current == userID {
		s.session.Clear()
	}

	s.persistLocked(ports.SnapshotUsers, ports.SnapshotArticles, ports.SnapshotComments, ports.SnapshotTags, ports.SnapshotCurrentUser)
	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}
