// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package auth

import (
	stdctx "context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/constants"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/mailer"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/platform/validate"
	"github.com/revio-app/revio/pkg/uuidv7"
)

// TokenIssuer abstracts the JWT layer so the service can be unit-tested
// without RSA key material.
type TokenIssuer interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// # Service Layer

// Service implements the signup/token handshake.
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	mail     mailer.Mailer
	codeTTL  time.Duration // zero means codes never expire
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, tokens TokenIssuer, mail mailer.Mailer, codeTTL, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		mail:     mail,
		codeTTL:  codeTTL,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// # Signup Handshake

/*
Signup registers a new account, or reissues the confirmation code when the
exact (username, email) pair already exists.

# Flow
 1. Validate username (charset, length, reserved "me") and email.
 2. Look up both identifiers.
 3. Same pair registered: reissue a fresh code (idempotent re-request).
 4. Either identifier claimed by a different pairing: field-level
    validation failure, so signup cannot probe or hijack accounts.
 5. Fresh pair: create the account with the default user role.
 6. Generate a code, store only its bcrypt hash, email the plain code.

Parameters:
  - context: context.Context
  - username: string
  - email: string

Returns:
  - *User: The registered or re-confirmed account
  - error: Validation or persistence failures
*/
func (service *Service) Signup(context stdctx.Context, username, email string) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, MaxUsernameLen).
		Username(FieldUsername, username)
	validator.Required(FieldEmail, email).
		MaxLen(FieldEmail, email, MaxEmailLen).
		Email(FieldEmail, email)

	// Case-insensitive: "ME" would otherwise shadow the /users/me route.
	if strings.EqualFold(username, constants.ReservedUsernameMe) {
		validator.Custom(FieldUsername, true, "This username is reserved")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	byUsername, err := service.users.FindByUsername(context, username)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	byEmail, err := service.users.FindByEmail(context, email)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	switch {
	case byUsername != nil && byUsername.Email == email:
		// Exact pair already registered: this is a code re-request.
		return byUsername, service.issueCode(context, byUsername)

	case byUsername != nil:
		return nil, validate.RequiredError(FieldUsername, "Username is already taken")

	case byEmail != nil:
		return nil, validate.RequiredError(FieldEmail, "Email is already registered")
	}

	user := &User{
		ID:       uuidv7.New(),
		Username: username,
		Email:    email,
		Role:     sec.RoleUser,
	}

	if err := service.users.Create(context, user); err != nil {
		// A concurrent signup may win the unique-index race after our
		// lookups; surface it the same way as a sequential duplicate.
		if dberr.IsUniqueViolation(err) {
			return nil, validate.RequiredError(FieldUsername, "Username or email is already taken")
		}
		return nil, err
	}

	service.logger.Info("user_signed_up",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, service.issueCode(context, user)
}

/*
IssueToken exchanges a confirmation code for a JWT access token.

# Flow
 1. Unknown username: 404 (per the signup contract, not a validation error).
 2. No active code, or code expired (when a TTL is configured): validation
    failure directing the user back to signup.
 3. Hash mismatch: validation failure; the stored code stays valid so a
    typo does not force a full re-signup.
 4. Match: sign an access token, then clear the code (single-use).

Parameters:
  - context: context.Context
  - username: string
  - code: string (Plain-text confirmation code)

Returns:
  - string: Signed JWT access token
  - error: NotFound, validation, or persistence failures
*/
func (service *Service) IssueToken(context stdctx.Context, username, code string) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, username)
	// A code shorter than the issued length can never match a stored hash.
	validator.Required(FieldConfirmationCode, code).
		MinLen(FieldConfirmationCode, code, constants.ConfirmationCodeDigits)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return "", apperr.NotFound("User")
		}
		return "", err
	}

	if user.ConfirmationCodeHash == "" {
		return "", validate.RequiredError(FieldConfirmationCode, "No active confirmation code; request one via signup")
	}

	if service.codeTTL > 0 && user.CodeIssuedAt != nil && time.Since(*user.CodeIssuedAt) > service.codeTTL {
		return "", validate.RequiredError(FieldConfirmationCode, "Confirmation code has expired; request a new one via signup")
	}

	if !sec.CheckCodeHash(code, user.ConfirmationCodeHash) {
		return "", validate.RequiredError(FieldConfirmationCode, "Invalid confirmation code")
	}

	// Sign first: if signing fails the code stays stored, so the user can
	// retry the exchange instead of restarting the whole signup.
	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), service.tokenTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := service.users.ClearConfirmationCode(context, user.ID); err != nil {
		return "", err
	}

	service.logger.Info("access_token_issued",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}

// # Internal Helpers

// issueCode generates, stores (hashed), and emails a fresh confirmation code.
func (service *Service) issueCode(context stdctx.Context, user *User) error {
	code, err := sec.GenerateConfirmationCode(constants.ConfirmationCodeDigits)
	if err != nil {
		return apperr.Internal(err)
	}

	codeHash, err := sec.HashCode(code)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.users.SetConfirmationCode(context, user.ID, codeHash); err != nil {
		return err
	}

	if err := service.mail.SendConfirmationCode(context, user.Email, user.Username, code); err != nil {
		// The hash is already stored, so the user can re-request delivery
		// by signing up again with the same pair.
		service.logger.Error("confirmation_code_delivery_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return apperr.Internal(err)
	}

	return nil
}
