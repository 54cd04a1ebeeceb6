// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revio-app/revio/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies the role hierarchy ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_moderator", sec.RoleAdmin, sec.RoleModerator, true},
		{"moderator_meets_user", sec.RoleModerator, sec.RoleUser, true},
		{"moderator_below_admin", sec.RoleModerator, sec.RoleAdmin, false},
		{"user_below_moderator", sec.RoleUser, sec.RoleModerator, false},
		{"unknown_below_user", sec.UserRole("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestUserRole_IsValid verifies enum validation of role values.
*/
func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, sec.RoleUser.IsValid())
	assert.True(t, sec.RoleModerator.IsValid())
	assert.True(t, sec.RoleAdmin.IsValid())
	assert.False(t, sec.UserRole("superuser").IsValid())
	assert.False(t, sec.UserRole("").IsValid())
}

/*
TestCanManageContent verifies the single ownership rule for reviews
and comments: authors always may, moderators and admins always may,
everyone else may not.
*/
func TestCanManageContent(t *testing.T) {
	tests := []struct {
		name        string
		role        sec.UserRole
		requesterID string
		authorID    string
		want        bool
	}{
		{"author_edits_own", sec.RoleUser, "u1", "u1", true},
		{"stranger_denied", sec.RoleUser, "u2", "u1", false},
		{"moderator_edits_any", sec.RoleModerator, "u2", "u1", true},
		{"admin_edits_any", sec.RoleAdmin, "u2", "u1", true},
		{"anonymous_denied", sec.UserRole(""), "", "u1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.CanManageContent(tt.role, tt.requesterID, tt.authorID))
		})
	}
}
