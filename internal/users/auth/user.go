// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

/*
Package auth implements the user identity layer and the signup handshake.

Revio has no passwords. A user signs up with a username and email address,
receives a short numeric confirmation code by email, and exchanges that
code for a JWT access token. The code is stored bcrypt-hashed, is
single-use, and is reissued on a repeat signup request for the same
(username, email) pair.

# Architecture

This layer is the "Truth" of the system for identity. Entities defined here
encapsulate all business rules about who a user is and how they prove it.
*/
package auth

import (
	"time"

	"github.com/revio-app/revio/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Revio platform.
type User struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`

	// ConfirmationCodeHash holds the bcrypt hash of the last issued signup
	// code, empty once the code has been exchanged. Omitted from JSON.
	ConfirmationCodeHash string     `json:"-"`
	CodeIssuedAt         *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the
// authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
	FieldRole             = "role"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
)
