// Package auth holds the authorization policy for the staff hierarchy. Every
// function here is a pure decision over an already-resolved principal; the
// services are responsible for resolving the principal fresh from the store
// before asking, so a role change takes effect on the very next action.
package auth

import (
	"github.com/campuscrm/admitdesk/internal/app/models"
)

// Principal is the authenticated actor performing an action
type Principal struct {
	ID   int64
	Name string
	Role models.Role
}

// CanManageAccount reports whether the actor may delete the target account or
// reset its password. Nobody manages their own account through this path, a
// SUPER_ADMIN manages anyone else, and an ADMIN manages only FACULTY.
func CanManageAccount(actor Principal, target *models.User) bool {
	if target == nil || actor.ID == target.ID {
		return false
	}
	switch actor.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin:
		return target.Role == models.RoleFaculty
	}
	return false
}

// CanChangeRole reports whether the actor may change any account's role.
// Only the top tier may assign or revoke roles, including SUPER_ADMIN itself.
func CanChangeRole(actor Principal) bool {
	return actor.Role == models.RoleSuperAdmin
}

// CanCreateAccount reports whether the actor may create staff accounts.
// New accounts are always created as FACULTY regardless of the creator's tier.
func CanCreateAccount(actor Principal) bool {
	return actor.Role == models.RoleSuperAdmin || actor.Role == models.RoleAdmin
}

// StudentScope restricts student queries to a single uploader. The zero value
// means no restriction.
type StudentScope struct {
	UploadedByID int64
}

// Restricted reports whether the scope limits visibility to one uploader
func (s StudentScope) Restricted() bool {
	return s.UploadedByID != 0
}

// ListScope returns the visibility filter for the calling list. Only a
// SUPER_ADMIN sees every record; ADMIN and FACULTY work their own uploads.
func ListScope(actor Principal) StudentScope {
	if actor.Role == models.RoleSuperAdmin {
		return StudentScope{}
	}
	return StudentScope{UploadedByID: actor.ID}
}

// AggregateScope returns the visibility filter for dashboard aggregation.
// ADMIN sees global totals here even though ListScope restricts its calling
// list. The two scopes are intentionally different; see DESIGN.md.
func AggregateScope(actor Principal) StudentScope {
	if actor.Role == models.RoleSuperAdmin || actor.Role == models.RoleAdmin {
		return StudentScope{}
	}
	return StudentScope{UploadedByID: actor.ID}
}
