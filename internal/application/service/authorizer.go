package service

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
)

// Actor is the authenticated operator behind a request
type Actor struct {
	ID          uuid.UUID
	Roles       []string
	Permissions []string
}

// IsSuperAdmin reports whether the actor holds the super-admin role
func (a Actor) IsSuperAdmin() bool {
	return lo.Contains(a.Roles, enum.RoleSuperAdmin)
}

// PriceAuthorizer decides whether an actor may write catalog prices
type PriceAuthorizer interface {
	CanUpdatePrices(actor Actor) bool
}

// RoleAuthorizer grants price updates to a fixed set of roles and to anyone
// holding the update-prices permission
type RoleAuthorizer struct {
	roles []string
}

// NewRoleAuthorizer creates an authorizer for the given role names
func NewRoleAuthorizer(roles []string) *RoleAuthorizer {
	return &RoleAuthorizer{roles: lo.Uniq(roles)}
}

// CanUpdatePrices implements PriceAuthorizer
func (a *RoleAuthorizer) CanUpdatePrices(actor Actor) bool {
	if lo.Contains(actor.Permissions, enum.PermissionUpdatePrices) {
		return true
	}
	return lo.SomeBy(actor.Roles, func(role string) bool {
		return lo.Contains(a.roles, role)
	})
}
