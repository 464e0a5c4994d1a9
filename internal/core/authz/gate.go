// Package authz evaluates whether an actor may perform an operation. It is
// read-only over the registry and holds no state of its own; every mutating
// store operation consults it before touching a collection.
package authz

import (
	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/registry"
)

// Gate answers permission questions for actors against a permission registry.
type Gate struct {
	reg *registry.Registry
}

// New returns a gate bound to reg.
func New(reg *registry.Registry) *Gate {
	return &Gate{reg: reg}
}

// Can reports whether the actor holds perm. A nil actor (anonymous caller)
// holds nothing.
func (g *Gate) Can(actor *domain.User, perm domain.Permission) bool {
	if actor == nil {
		return false
	}
	return g.reg.Has(actor.Role, perm)
}

// CanActOnOwned is the single ownership-scoped authorization predicate in the
// system: true when the actor holds the any-scope permission, or owns the
// resource and holds the own-scope permission. Callers must not reimplement
// this decision inline.
func (g *Gate) CanActOnOwned(actor *domain.User, permAny, permOwn domain.Permission, ownerID string) bool {
	if g.Can(actor, permAny) {
		return true
	}
	return actor != nil && actor.ID == ownerID && g.Can(actor, permOwn)
}
