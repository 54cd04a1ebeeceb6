// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revio-app/revio/internal/platform/middleware"
	requestutil "github.com/revio-app/revio/internal/platform/request"
	"github.com/revio-app/revio/internal/platform/respond"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for user administration and profiles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with user management endpoints. The /me
// surface only requires authentication; everything else is admin-only.
// Chi matches the static "me" segment before the {username} wildcard.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/me", handler.getProfile)
		protected.Patch("/me", handler.updateProfile)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/", handler.list)
		admin.Post("/", handler.create)
		admin.Get("/{username}", handler.get)
		admin.Patch("/{username}", handler.update)
		admin.Delete("/{username}", handler.delete)
	})

	return router
}

// # Administration Endpoints

/*
GET /api/v1/users.

Description: Lists accounts with pagination and an optional username
substring search.

Request (Query):
  - search: string (Optional username filter)
  - page, limit: int

Response:
  - 200: Paginated list of users
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.service.ListUsers(request.Context(), search, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/users.

Description: Provisions an account with an assignable role. No
confirmation code is sent; the user completes signup on their own.

Request (Body):
  - { username, email, first_name, last_name, bio, role }

Response:
  - 201: The created user
  - 400: ErrInvalidJSON/Validation: Bad identifiers, unknown role, or
    duplicate username/email
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// GET /api/v1/users/{username}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.GetUser(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/{username}.

Description: Partially updates any account, including role assignment.

Response:
  - 200: The updated user
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), requestutil.Param(request, "username"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// DELETE /api/v1/users/{username}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteUser(request.Context(), requestutil.Param(request, "username")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Profile Endpoints

// GET /api/v1/users/me.
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Partially updates the requester's own account. A role field
in the payload is ignored.

Response:
  - 200: The updated user
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
