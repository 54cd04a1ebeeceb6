// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/revio-app/revio/internal/platform/request"
	"github.com/revio-app/revio/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the signup/token handshake.
// Both endpoints are anonymous by design.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.issueToken)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// # Authentication Endpoints

/*
POST /api/v1/auth/signup.

Description: Registers an account (or reissues the confirmation code for
an existing username+email pair) and emails a confirmation code.

Request (Body):
  - { "username": "string", "email": "string" }

Response:
  - 200: { username, email }: Code issued
  - 400: ErrInvalidJSON/Validation: Invalid or conflicting identifiers
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Signup(request.Context(), input.Username, input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldUsername: user.Username,
		FieldEmail:    user.Email,
	})
}

/*
POST /api/v1/auth/token.

Description: Exchanges a confirmation code for a JWT access token. Codes
are single-use; a successful exchange consumes the code.

Request (Body):
  - { "username": "string", "confirmation_code": "string" }

Response:
  - 200: { token }: Signed access token
  - 400: ErrInvalidJSON/Validation: Missing, wrong, or expired code
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.IssueToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldToken: token,
	})
}
