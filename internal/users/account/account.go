// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

/*
Package account handles user administration and self-service profiles.

Administrators manage the full user inventory (create, inspect, update,
remove, including role assignment). Every authenticated user additionally
owns the /users/me surface, where the role field is deliberately ignored
on writes so nobody can promote themselves.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Authorization: admin gates live in the router; the me-surface role
    strip lives in the service so it cannot be bypassed.
*/
package account

import (
	"context"

	"github.com/revio-app/revio/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user administration.
type AccountRepository interface {
	/*
		List returns a page of users, optionally filtered by a username
		substring search.

		Parameters:
		  - context: context.Context
		  - search: string
		  - limit, offset: int

		Returns:
		  - []*auth.User: Matching accounts
		  - int: Total matching count
		  - error: Storage failures
	*/
	List(context context.Context, search string, limit, offset int) ([]*auth.User, int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		Create persists an administratively provisioned account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Conflict on duplicate username/email, or storage failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable fields of an existing user, including
		identity and role.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		DeleteByUsername removes an account. The user's reviews and
		comments are removed by the database cascade.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	DeleteByUsername(context context.Context, username string) error
}

// # Write Payloads

// CreateInput is the payload for administrative account creation.
type CreateInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateInput is the payload for partial account updates. Nil fields keep
// their current value. Role is honored only on the administrative surface.
type UpdateInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}
