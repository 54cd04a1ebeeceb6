// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/users/account"
	"github.com/revio-app/revio/internal/users/auth"
	"github.com/revio-app/revio/pkg/pointer"
)

// # Test Fakes

// fakeAccountRepository is an in-memory AccountRepository keyed by user ID.
type fakeAccountRepository struct {
	users map[string]*auth.User
}

func newFakeAccountRepository(seed ...*auth.User) *fakeAccountRepository {
	repo := &fakeAccountRepository{users: make(map[string]*auth.User)}
	for _, user := range seed {
		copied := *user
		repo.users[user.ID] = &copied
	}
	return repo
}

func (r *fakeAccountRepository) List(_ context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	var all []*auth.User
	for _, user := range r.users {
		copied := *user
		all = append(all, &copied)
	}
	return all, len(all), nil
}

func (r *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeAccountRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeAccountRepository) DeleteByUsername(_ context.Context, username string) error {
	for id, user := range r.users {
		if user.Username == username {
			delete(r.users, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

func newTestService(repo *fakeAccountRepository) *account.Service {
	return account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Administration

/*
TestCreateUser_WithRole verifies that administrators can provision
accounts with a specific role.
*/
func TestCreateUser_WithRole(t *testing.T) {
	repo := newFakeAccountRepository()
	service := newTestService(repo)

	user, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, user.Role)
	assert.NotEmpty(t, user.ID)
}

/*
TestCreateUser_DefaultsToUserRole verifies the role default on an empty
role field.
*/
func TestCreateUser_DefaultsToUserRole(t *testing.T) {
	service := newTestService(newFakeAccountRepository())

	user, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "plain",
		Email:    "plain@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
}

/*
TestCreateUser_Invalid covers unknown roles and the reserved username.
*/
func TestCreateUser_Invalid(t *testing.T) {
	service := newTestService(newFakeAccountRepository())

	tests := []struct {
		name  string
		input account.CreateInput
	}{
		{"unknown_role", account.CreateInput{Username: "x", Email: "x@example.com", Role: "superuser"}},
		{"reserved_me", account.CreateInput{Username: "me", Email: "me@example.com"}},
		{"reserved_me_case", account.CreateInput{Username: "ME", Email: "me@example.com"}},
		{"bad_email", account.CreateInput{Username: "x", Email: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateUser(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestUpdateUser_RoleChange verifies that the administrative surface can
promote an account.
*/
func TestUpdateUser_RoleChange(t *testing.T) {
	repo := newFakeAccountRepository(&auth.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser,
	})
	service := newTestService(repo)

	updated, err := service.UpdateUser(context.Background(), "alice", account.UpdateInput{
		Role: pointer.To("moderator"),
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, updated.Role)
	assert.Equal(t, sec.RoleModerator, repo.users["u1"].Role)
}

/*
TestUpdateUser_Unknown verifies the 404 contract.
*/
func TestUpdateUser_Unknown(t *testing.T) {
	service := newTestService(newFakeAccountRepository())

	_, err := service.UpdateUser(context.Background(), "ghost", account.UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestDeleteUser verifies removal and the 404 on a second delete.
*/
func TestDeleteUser(t *testing.T) {
	repo := newFakeAccountRepository(&auth.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser,
	})
	service := newTestService(repo)

	require.NoError(t, service.DeleteUser(context.Background(), "alice"))
	assert.Empty(t, repo.users)

	err := service.DeleteUser(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Self-Service Profile

/*
TestUpdateProfile_IgnoresRole verifies the core promotion guard: a role
field on the self-service surface succeeds but leaves the role unchanged.
*/
func TestUpdateProfile_IgnoresRole(t *testing.T) {
	repo := newFakeAccountRepository(&auth.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser,
	})
	service := newTestService(repo)

	updated, err := service.UpdateProfile(context.Background(), "u1", account.UpdateInput{
		Bio:  pointer.To("reader of long books"),
		Role: pointer.To("admin"),
	})
	require.NoError(t, err)

	assert.Equal(t, "reader of long books", updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role)
	assert.Equal(t, sec.RoleUser, repo.users["u1"].Role)
}

/*
TestUpdateProfile_PartialUpdate verifies that nil fields keep their
current values.
*/
func TestUpdateProfile_PartialUpdate(t *testing.T) {
	repo := newFakeAccountRepository(&auth.User{
		ID: "u1", Username: "alice", Email: "alice@example.com",
		FirstName: "Alice", Bio: "old bio", Role: sec.RoleUser,
	})
	service := newTestService(repo)

	updated, err := service.UpdateProfile(context.Background(), "u1", account.UpdateInput{
		LastName: pointer.To("Liddell"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "Liddell", updated.LastName)
	assert.Equal(t, "old bio", updated.Bio)
}

/*
TestUpdateProfile_ReservedUsername verifies that a self-rename to "me"
is rejected.
*/
func TestUpdateProfile_ReservedUsername(t *testing.T) {
	repo := newFakeAccountRepository(&auth.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser,
	})
	service := newTestService(repo)

	_, err := service.UpdateProfile(context.Background(), "u1", account.UpdateInput{
		Username: pointer.To("me"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
