// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract the signup handshake needs.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate username/email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		SetConfirmationCode replaces the stored code hash and stamps the
		issue time. Called on first signup and on every re-request.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - codeHash: string

		Returns:
		  - error: Persistence failures
	*/
	SetConfirmationCode(context context.Context, userID, codeHash string) error

	/*
		ClearConfirmationCode removes the stored code hash after a
		successful exchange, making the code single-use.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	ClearConfirmationCode(context context.Context, userID string) error
}
