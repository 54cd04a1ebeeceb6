// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/ctxutil"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/platform/validate"
	"github.com/revio-app/revio/pkg/uuidv7"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns validate.ErrInvalidJSON if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter (slug, username, UUID) from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and parses it as an integer.
// It returns a not_found error when the segment is not numeric, so malformed
// IDs surface the same way as missing records.
func IntParam(request *http.Request, name, resource string) (int, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

// UUIDParam retrieves a named URL parameter and validates it as a UUID.
// A malformed value surfaces as not_found, matching IntParam, and never
// reaches the storage layer where it would fail the uuid column cast.
func UUIDParam(request *http.Request, name, resource string) (string, error) {
	raw := chi.URLParam(request, name)
	if !uuidv7.IsValid(raw) {
		return "", apperr.NotFound(resource)
	}
	return raw, nil
}

// Claims extracts the authenticated user claims from the request context.
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the user claims.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the User ID of the currently logged-in user, or
// apperr.Unauthorized if the request is anonymous.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
