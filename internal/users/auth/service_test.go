// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/users/auth"
)

// # Test Fakes

// fakeUserRepository is an in-memory UserRepository keyed by username.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := r.users[username]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *fakeUserRepository) SetConfirmationCode(_ context.Context, userID, codeHash string) error {
	for _, user := range r.users {
		if user.ID == userID {
			now := time.Now()
			user.ConfirmationCodeHash = codeHash
			user.CodeIssuedAt = &now
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (r *fakeUserRepository) ClearConfirmationCode(_ context.Context, userID string) error {
	for _, user := range r.users {
		if user.ID == userID {
			user.ConfirmationCodeHash = ""
			user.CodeIssuedAt = nil
			return nil
		}
	}
	return dberr.ErrNotFound
}

// fakeTokenIssuer records issued tokens without real signing.
type fakeTokenIssuer struct {
	issued  int
	signErr error
}

func (f *fakeTokenIssuer) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.issued++
	return "token:" + userID + ":" + role, nil
}

// fakeMailer captures the plain confirmation codes sent to each address.
type fakeMailer struct {
	sent map[string][]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(map[string][]string)}
}

func (m *fakeMailer) SendConfirmationCode(_ context.Context, email, username, code string) error {
	m.sent[email] = append(m.sent[email], code)
	return nil
}

func (m *fakeMailer) lastCode(email string) string {
	codes := m.sent[email]
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}

func newTestService(repo *fakeUserRepository, mail *fakeMailer, codeTTL time.Duration) (*auth.Service, *fakeTokenIssuer) {
	tokens := &fakeTokenIssuer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(repo, tokens, mail, codeTTL, time.Hour, logger), tokens
}

// # Signup

/*
TestSignup_NewUser verifies the happy path: account created with the user
role and a confirmation code delivered by email.
*/
func TestSignup_NewUser(t *testing.T) {
	repo := newFakeUserRepository()
	mail := newFakeMailer()
	service, _ := newTestService(repo, mail, 0)

	user, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)

	// Code stored hashed, plain code delivered by mail.
	stored := repo.users["alice"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.ConfirmationCodeHash)

	code := mail.lastCode("alice@example.com")
	require.NotEmpty(t, code)
	assert.NotEqual(t, code, stored.ConfirmationCodeHash)
	assert.True(t, sec.CheckCodeHash(code, stored.ConfirmationCodeHash))
}

/*
TestSignup_RepeatPair verifies that signing up again with the same
(username, email) pair reissues a fresh code instead of failing.
*/
func TestSignup_RepeatPair(t *testing.T) {
	repo := newFakeUserRepository()
	mail := newFakeMailer()
	service, _ := newTestService(repo, mail, 0)

	first, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	second, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	// Same account, two delivered codes.
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, mail.sent["alice@example.com"], 2)
}

/*
TestSignup_ConflictingIdentifiers verifies that a username or email
claimed by a different pairing fails with a field-level validation error.
*/
func TestSignup_ConflictingIdentifiers(t *testing.T) {
	repo := newFakeUserRepository()
	mail := newFakeMailer()
	service, _ := newTestService(repo, mail, 0)

	_, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name      string
		username  string
		email     string
		wantField string
	}{
		{"username_taken", "alice", "other@example.com", "username"},
		{"email_taken", "bob", "alice@example.com", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tt.username, tt.email)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
		})
	}
}

/*
TestSignup_ReservedUsername verifies that "me" is rejected regardless of
case, since it would shadow the profile route.
*/
func TestSignup_ReservedUsername(t *testing.T) {
	repo := newFakeUserRepository()
	service, _ := newTestService(repo, newFakeMailer(), 0)

	for _, username := range []string{"me", "Me", "ME"} {
		_, err := service.Signup(context.Background(), username, "me@example.com")
		require.Error(t, err, "username %q must be rejected", username)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	}
	assert.Empty(t, repo.users)
}

/*
TestSignup_InvalidInput covers charset and format validation.
*/
func TestSignup_InvalidInput(t *testing.T) {
	service, _ := newTestService(newFakeUserRepository(), newFakeMailer(), 0)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"empty_username", "", "a@example.com"},
		{"bad_charset", "two words", "a@example.com"},
		{"bad_email", "alice", "not-an-email"},
		{"long_username", strings.Repeat("a", 200), "a@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tt.username, tt.email)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

// # Token Exchange

/*
TestIssueToken_HappyPath verifies the full handshake: signup, then
exchange the delivered code for a token exactly once.
*/
func TestIssueToken_HappyPath(t *testing.T) {
	repo := newFakeUserRepository()
	mail := newFakeMailer()
	service, tokens := newTestService(repo, mail, 0)

	user, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	code := mail.lastCode("alice@example.com")

	token, err := service.IssueToken(context.Background(), "alice", code)
	require.NoError(t, err)
	assert.Equal(t, "token:"+user.ID+":user", token)
	assert.Equal(t, 1, tokens.issued)

	// Codes are single-use: the second exchange must fail.
	_, err = service.IssueToken(context.Background(), "alice", code)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, 1, tokens.issued)
}

/*
TestIssueToken_UnknownUser verifies the 404 contract for unknown usernames.
*/
func TestIssueToken_UnknownUser(t *testing.T) {
	service, _ := newTestService(newFakeUserRepository(), newFakeMailer(), 0)

	_, err := service.IssueToken(context.Background(), "ghost", "123456")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestIssueToken_WrongCode verifies that a wrong code fails but keeps the
stored code valid, so a typo does not force a full re-signup.
*/
func TestIssueToken_WrongCode(t *testing.T) {
	repo := newFakeUserRepository()
	mail := newFakeMailer()
	service, _ := newTestService(repo, mail, 0)

	_, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	code := mail.lastCode("alice@example.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = service.IssueToken(context.Background(), "alice", wrong)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// The correct code still works after the failed attempt.
	_, err = service.IssueToken(context.Background(), "alice", code)
	assert.NoError(t, err)
}

/*
TestIssueToken_SigningFailure verifies that a signing failure does not
consume the code: the user retries the exchange once the signer recovers.
*/
func TestIssueToken_SigningFailure(t *testing.T) {
	repo := newFakeUserRepository()
	mail := newFakeMailer()
	service, tokens := newTestService(repo, mail, 0)

	_, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	code := mail.lastCode("alice@example.com")

	tokens.signErr = errors.New("signer unavailable")
	_, err = service.IssueToken(context.Background(), "alice", code)
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
	assert.NotEmpty(t, repo.users["alice"].ConfirmationCodeHash)

	tokens.signErr = nil
	_, err = service.IssueToken(context.Background(), "alice", code)
	assert.NoError(t, err)
}

/*
TestIssueToken_ExpiredCode verifies TTL enforcement when a code lifetime
is configured.
*/
func TestIssueToken_ExpiredCode(t *testing.T) {
	repo := newFakeUserRepository()
	mail := newFakeMailer()
	service, _ := newTestService(repo, mail, time.Minute)

	_, err := service.Signup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	code := mail.lastCode("alice@example.com")

	// Backdate the issuance beyond the TTL.
	issued := time.Now().Add(-2 * time.Minute)
	repo.users["alice"].CodeIssuedAt = &issued

	_, err = service.IssueToken(context.Background(), "alice", code)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestIssueToken_NoActiveCode verifies the error when no code was ever issued.
*/
func TestIssueToken_NoActiveCode(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users["alice"] = &auth.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser}
	service, _ := newTestService(repo, newFakeMailer(), 0)

	_, err := service.IssueToken(context.Background(), "alice", "123456")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
