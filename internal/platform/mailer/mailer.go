// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

/*
Package mailer delivers transactional email for the signup flow.

The only message the platform currently sends is the confirmation code that
lets a user exchange their identity for a JWT. The [Mailer] interface keeps
the delivery mechanism swappable: production wires a real provider, while
development and tests use [LogMailer], which writes the code to the
structured log instead of sending anything.
*/
package mailer

import (
	"context"
	"log/slog"
)

// Mailer sends transactional messages to end users.
type Mailer interface {
	// SendConfirmationCode delivers the signup confirmation code to the
	// given address. Implementations must not log the code at INFO level
	// in production.
	SendConfirmationCode(ctx context.Context, email, username, code string) error
}

// # Development Implementation

// LogMailer writes outgoing mail to the structured log instead of sending it.
// Useful for local development and integration tests where no SMTP relay
// is available.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer backed by the given logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendConfirmationCode implements [Mailer] by logging the delivery.
func (m *LogMailer) SendConfirmationCode(ctx context.Context, email, username, code string) error {
	m.logger.InfoContext(ctx, "confirmation_code_issued",
		slog.String("email", email),
		slog.String("username", username),
		slog.String("code", code),
	)
	return nil
}
