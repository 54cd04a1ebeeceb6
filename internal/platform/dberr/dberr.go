// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/revio-app/revio/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type by SQLSTATE.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations carry a SQLSTATE we can classify.
	// The original error is kept as the cause so callers can still reach
	// the PgError (see IsUniqueViolation) and attach a domain message.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			// Losers of a unique-index race land here; clients may retry reads.
			appError := apperr.Conflict("Resource already exists")
			appError.Cause = err
			return appError
		case pgerrcode.ForeignKeyViolation:
			appError := apperr.ValidationError("Referenced resource does not exist")
			appError.Cause = err
			return appError
		case pgerrcode.CheckViolation:
			appError := apperr.ValidationError("Value violates a data constraint")
			appError.Cause = err
			return appError
		}
	}

	// 3. Everything else becomes an Internal Server Error; the action tag
	// survives in the cause chain for logging.
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint failure.
// Services use this to attach a resource-specific conflict message.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// UniqueConstraint returns the name of the violated unique constraint, or
// an empty string when err is not a unique violation. Services use it to
// tell apart multiple unique indexes on the same table (e.g. name vs slug).
func UniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}
