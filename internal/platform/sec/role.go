// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package sec

// # User Roles

// UserRole represents the authorization tier granted to an account.
type UserRole string

const (
	// Unrestricted system access, including catalog and user administration
	RoleAdmin UserRole = "admin"

	// Can edit or remove any review and comment
	RoleModerator UserRole = "moderator"

	// Default tier for registered accounts
	RoleUser UserRole = "user"
)

// Roles lists every valid role value, used for enum validation.
func Roles() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}

// IsValid reports whether r is a known role value.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Content Ownership Policy

// CanManageContent reports whether a requester may mutate a review or comment.
//
// The author always may; moderators and admins may regardless of authorship.
// This is the single ownership rule for all user-generated content.
func CanManageContent(role UserRole, requesterID, authorID string) bool {
	if requesterID != "" && requesterID == authorID {
		return true
	}
	return role.AtLeast(RoleModerator)
}
