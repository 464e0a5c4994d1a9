// Package registry holds the role → permission-set mapping the authorization
// gate evaluates against. It is an injected dependency, not a process global:
// the store and the gate both receive the same instance from the composition
// root.
package registry

import (
	"sort"
	"sync"

	"github.com/inkpress/publishing-core/internal/core/domain"
)

// Registry maps role names to permission sets. Reserved roles (the
// registration default and the full-rights administrative role) can have
// their grants edited but can never be removed.
type Registry struct {
	mu     sync.RWMutex
	grants map[string]map[domain.Permission]struct{}
}

// New returns a registry preloaded with the built-in roles and their default
// grants.
func New() *Registry {
	r := &Registry{grants: make(map[string]map[domain.Permission]struct{})}
	r.Define(domain.RoleAdmin, domain.AllPermissions())
	r.Define(domain.RoleWriter, []domain.Permission{
		domain.PermCreateArticle,
		domain.PermEditOwnArticle,
		domain.PermDeleteOwnArticle,
		domain.PermCreateComment,
		domain.PermEditOwnComment,
		domain.PermDeleteOwnComment,
	})
	r.Define(domain.RoleReader, []domain.Permission{
		domain.PermCreateComment,
		domain.PermEditOwnComment,
		domain.PermDeleteOwnComment,
	})
	return r
}

// Define upserts the permission set for a role. It reports whether an
// existing role was redefined, so callers can surface the overwrite for
// audit; redefinition is informational, never an error.
func (r *Registry) Define(role string, perms []domain.Permission) (redefined bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, redefined = r.grants[role]
	set := make(map[domain.Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	r.grants[role] = set
	return redefined
}

// PermissionsFor returns the role's permissions sorted by name. Unknown roles
// yield an empty set, never an error, so authorization fails closed.
func (r *Registry) PermissionsFor(role string) []domain.Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.grants[role]
	perms := make([]domain.Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// Has reports whether the role's permission set contains perm. Unknown roles
// have no permissions.
func (r *Registry) Has(role string, perm domain.Permission) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.grants[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// Exists reports whether the role is defined.
func (r *Registry) Exists(role string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.grants[role]
	return ok
}

// Reserved reports whether the role may never be removed.
func Reserved(role string) bool {
	return role == domain.RoleAdmin || role == domain.RoleReader
}

// Fallback is the role users are reassigned to when their role is removed.
func Fallback() string {
	return domain.RoleReader
}

// Remove deletes a role definition. Reserved roles fail with
// ErrProtectedRole; unknown roles with ErrRoleNotFound. Reassigning users
// holding the role is the store's job and must happen before the removal is
// observable.
func (r *Registry) Remove(role string) error {
	if Reserved(role) {
		return domain.ErrProtectedRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.grants[role]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.grants, role)
	return nil
}

// Roles returns the defined role names, sorted.
func (r *Registry) Roles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.grants))
	for name := range r.grants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export captures the full mapping for persistence.
func (r *Registry) Export() map[string][]domain.Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]domain.Permission, len(r.grants))
	for role, set := range r.grants {
		perms := make([]domain.Permission, 0, len(set))
		for p := range set {
			perms = append(perms, p)
		}
		sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
		out[role] = perms
	}
	return out
}

// Restore replaces the mapping wholesale from a persisted export. Reserved
// roles missing from the snapshot are re-created with their defaults so a
// corrupt snapshot can never leave the system without an admin or a fallback
// target.
func (r *Registry) Restore(grants map[string][]domain.Permission) {
	r.mu.Lock()
	r.grants = make(map[string]map[domain.Permission]struct{}, len(grants))
	for role, perms := range grants {
		set := make(map[domain.Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		r.grants[role] = set
	}
	r.mu.Unlock()

	defaults := New()
	for _, reserved := range []string{domain.RoleAdmin, domain.RoleReader} {
		if !r.Exists(reserved) {
			r.Define(reserved, defaults.PermissionsFor(reserved))
		}
	}
}
