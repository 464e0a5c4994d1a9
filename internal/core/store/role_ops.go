package store

import (
	"fmt"
	"strings"

	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
	"github.com/inkpress/publishing-core/internal/core/registry"
)

// DefineRole upserts a role's permission set. Requires manage-roles. The
// returned flag reports that an existing role was overwritten; callers
// surface it for audit, it is not an error.
func (s *Store) DefineRole(actorID, role string, perms []domain.Permission) (redefined bool, err error) {
	defer func() { recordOutcome("define_role", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Can(s.actor(actorID), domain.PermManageRoles) {
		return false, domain.ErrUnauthorized
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return false, fmt.Errorf("%w: role name is required", domain.ErrValidation)
	}

	redefined = s.reg.Define(role, perms)

	s.persistLocked(ports.SnapshotRoles)
	if redefined {
		s.log.Warn().Str("role", role).Msg("existing role redefined")
	} else {
		s.log.Info().Str("role", role).Msg("role defined")
	}
	return redefined, nil
}

// DeleteRole removes a role definition, first reassigning every user holding
// it to the fallback role so no user is ever left with a dangling role.
// Reserved roles fail with ErrProtectedRole. Requires manage-roles.
func (s *Store) DeleteRole(actorID, role string) (err error) {
	defer func() { recordOutcome("delete_role", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Can(s.actor(actorID), domain.PermManageRoles) {
		return domain.ErrUnauthorized
	}
	if registry.Reserved(role) {
		return domain.ErrProtectedRole
	}
	if !s.reg.Exists(role) {
		return domain.ErrRoleNotFound
	}

	fallback := registry.Fallback()
	reassigned := 0
	for _, u := range s.users {
		if u.Role == role {
			u.Role = fallback
			reassigned++
		}
	}
	// Cannot fail: reserved and existence were checked above.
	if err := s.reg.Remove(role); err != nil {
		return err
	}

	s.persistLocked(ports.SnapshotUsers, ports.SnapshotRoles)
	s.log.Info().Str("role", role).Int("reassigned", reassigned).Str("fallback", fallback).Msg("role deleted")
	return nil
}
