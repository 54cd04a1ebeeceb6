// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package account

import (
	stdctx "context"
	"errors"
	"log/slog"
	"strings"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/constants"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/platform/validate"
	"github.com/revio-app/revio/internal/users/auth"
	"github.com/revio-app/revio/pkg/pointer"
	"github.com/revio-app/revio/pkg/uuidv7"
)

// # Service Layer

// Service implements user administration and self-service profile logic.
type Service struct {
	accounts AccountRepository
	logger   *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(accounts AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		logger:   logger,
	}
}

// # Administration

/*
ListUsers returns a page of accounts, optionally filtered by a username
substring search.

Parameters:
  - context: context.Context
  - search: string (Empty string disables filtering)
  - limit, offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching count
  - error: Storage failures
*/
func (service *Service) ListUsers(context stdctx.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	return service.accounts.List(context, search, limit, offset)
}

// GetUser retrieves a single account by username.
func (service *Service) GetUser(context stdctx.Context, username string) (*auth.User, error) {
	return service.accounts.FindByUsername(context, username)
}

/*
CreateUser provisions an account administratively. Unlike signup, the role
is assignable and no confirmation code is issued: the new user obtains a
token through the regular signup flow, which reissues a code for the
existing (username, email) pair.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: The created account
  - error: Validation or persistence failures
*/
func (service *Service) CreateUser(context stdctx.Context, input CreateInput) (*auth.User, error) {
	role := sec.UserRole(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLen).
		Username(auth.FieldUsername, input.Username)
	validator.Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLen).
		Email(auth.FieldEmail, input.Email)
	validator.MaxLen(auth.FieldFirstName, input.FirstName, auth.MaxNamePartLen)
	validator.MaxLen(auth.FieldLastName, input.LastName, auth.MaxNamePartLen)
	validator.OneOf(auth.FieldRole, string(role), sec.Roles()...)
	validator.Custom(auth.FieldUsername, strings.EqualFold(input.Username, constants.ReservedUsernameMe), "This username is reserved")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.accounts.Create(context, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, validate.RequiredError(auth.FieldUsername, "Username or email is already taken")
		}
		return nil, err
	}

	service.logger.Info("user_provisioned",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
UpdateUser applies a partial update to any account, including identity and
role changes. Nil input fields keep their current value.

Parameters:
  - context: context.Context
  - username: string (Current username of the target account)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, validation, or persistence failures
*/
func (service *Service) UpdateUser(context stdctx.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.accounts.FindByUsername(context, username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return service.applyUpdate(context, user, input, true)
}

// DeleteUser removes an account; reviews and comments go with it via the
// database cascade.
func (service *Service) DeleteUser(context stdctx.Context, username string) error {
	if err := service.accounts.DeleteByUsername(context, username); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.String("username", username))
	return nil
}

// # Self-Service Profile

// GetProfile returns the account of the authenticated requester.
func (service *Service) GetProfile(context stdctx.Context, userID string) (*auth.User, error) {
	return service.accounts.FindByID(context, userID)
}

/*
UpdateProfile applies a partial update to the requester's own account. The
role field is discarded before the update runs, so the surface cannot be
used for self-promotion.

Parameters:
  - context: context.Context
  - userID: string (ID from the verified token claims)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, validation, or persistence failures
*/
func (service *Service) UpdateProfile(context stdctx.Context, userID string, input UpdateInput) (*auth.User, error) {
	user, err := service.accounts.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return service.applyUpdate(context, user, input, false)
}

// applyUpdate validates and persists the delta carried by input. Role
// changes are applied only when allowRole is set.
func (service *Service) applyUpdate(context stdctx.Context, user *auth.User, input UpdateInput, allowRole bool) (*auth.User, error) {
	validator := &validate.Validator{}

	if input.Username != nil {
		username := pointer.Val(input.Username)
		validator.Required(auth.FieldUsername, username).
			MaxLen(auth.FieldUsername, username, auth.MaxUsernameLen).
			Username(auth.FieldUsername, username)
		validator.Custom(auth.FieldUsername, strings.EqualFold(username, constants.ReservedUsernameMe), "This username is reserved")
		user.Username = username
	}
	if input.Email != nil {
		email := pointer.Val(input.Email)
		validator.Required(auth.FieldEmail, email).
			MaxLen(auth.FieldEmail, email, auth.MaxEmailLen).
			Email(auth.FieldEmail, email)
		user.Email = email
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.MaxNamePartLen)
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.MaxNamePartLen)
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil && allowRole {
		validator.OneOf(auth.FieldRole, *input.Role, sec.Roles()...)
		user.Role = sec.UserRole(*input.Role)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.accounts.Update(context, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, validate.RequiredError(auth.FieldUsername, "Username or email is already taken")
		}
		return nil, err
	}

	return user, nil
}
