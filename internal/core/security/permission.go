// Package security provides authorization and access control.
package security

import (
	"fmt"
	"strings"

	"creamery/internal/core/apperror"
)

// Access defines the level of a permission grant.
type Access string

const (
	AccessRead      Access = "r"
	AccessReadWrite Access = "rw"
)

// Permission is a scope plus an access level, e.g. "inventory:session:rw".
// The scope identifies a resource family ("inventory:session"), the access
// level whether the holder may only read it or also mutate it.
type Permission struct {
	Scope  string
	Access Access
}

// Of builds a permission from scope and access.
func Of(scope string, access Access) Permission {
	return Permission{Scope: scope, Access: access}
}

// Parse parses a "family:resource:access" string.
func Parse(s string) (Permission, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Permission{}, fmt.Errorf("invalid permission format: %q", s)
	}
	access := Access(parts[2])
	if access != AccessRead && access != AccessReadWrite {
		return Permission{}, fmt.Errorf("invalid permission access: %q", s)
	}
	return Permission{Scope: parts[0] + ":" + parts[1], Access: access}, nil
}

// String returns the canonical "scope:access" form.
func (p Permission) String() string {
	return p.Scope + ":" + string(p.Access)
}

// Implies reports whether holding p satisfies a requirement for other.
// Read-write implies read on the same scope; scopes never cross.
func (p Permission) Implies(other Permission) bool {
	if p.Scope != other.Scope {
		return false
	}
	return p.Access == AccessReadWrite || p.Access == other.Access
}

// Known permission scopes.
const (
	ScopeAdminUser     = "admin:user"
	ScopeAdminLocation = "admin:location"
	ScopeItem          = "inventory:item"
	ScopeSession       = "inventory:session"
	ScopeBatch         = "production:batch"
	ScopeWaste         = "production:waste"
)

// Role defines a job function at the facility.
type Role string

const (
	// RoleAdmin has all permissions, settings, user management.
	RoleAdmin Role = "ADMIN"
	// RoleProductionLead creates and approves production, records batches.
	RoleProductionLead Role = "PRODUCTION_LEAD"
	// RoleShiftLead takes inventory and resolves low-stock alerts.
	RoleShiftLead Role = "SHIFT_LEAD"
	// RoleTeamMember views tasks and logs counts on assigned items.
	RoleTeamMember Role = "TEAM_MEMBER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProductionLead, RoleShiftLead, RoleTeamMember:
		return true
	}
	return false
}

// DefaultPermissions returns the permission strings granted to a role
// when no explicit grants are stored. The switch is exhaustive over Role.
func DefaultPermissions(role Role) []string {
	switch role {
	case RoleAdmin:
		return []string{
			ScopeAdminUser + ":rw",
			ScopeAdminLocation + ":rw",
			ScopeItem + ":rw",
			ScopeSession + ":rw",
			ScopeBatch + ":rw",
			ScopeWaste + ":rw",
		}
	case RoleProductionLead:
		return []string{
			ScopeItem + ":r",
			ScopeSession + ":rw",
			ScopeBatch + ":rw",
			ScopeWaste + ":rw",
		}
	case RoleShiftLead:
		return []string{
			ScopeItem + ":r",
			ScopeSession + ":rw",
			ScopeBatch + ":rw",
			ScopeWaste + ":rw",
		}
	case RoleTeamMember:
		return []string{
			ScopeItem + ":r",
			ScopeSession + ":r",
			ScopeBatch + ":r",
			ScopeWaste + ":r",
		}
	default:
		return nil
	}
}

// HasPermission checks a set of granted permission strings against a requirement.
// Malformed grants are skipped rather than failing the whole check.
func HasPermission(granted []string, scope string, access Access) bool {
	required := Of(scope, access)
	for _, s := range granted {
		p, err := Parse(s)
		if err != nil {
			continue
		}
		if p.Implies(required) {
			return true
		}
	}
	return false
}

// RequirePermission returns a Forbidden error unless the grant set satisfies
// scope:access. Used by services to gate mutating operations.
func RequirePermission(granted []string, scope string, access Access) error {
	if !HasPermission(granted, scope, access) {
		return apperror.NewForbidden("insufficient permissions").
			WithDetail("required_permission", Of(scope, access).String())
	}
	return nil
}
