package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revio-app/revio/internal/platform/middleware"
	requestutil "github.com/revio-app/revio/internal/platform/request"
	"github.com/revio-app/revio/internal/platform/respond"
	"github.com/revio-app/revio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reviews. It is mounted under
// /titles/{titleID}/reviews so every operation is scoped to a parent title.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with review endpoints and the comment
// subtree mounted under each review.
func (handler *Handler) Routes(commentRoutes chi.Router) chi.Router {
	router := chi.NewRouter()

	// ## Public Reads
	router.Get("/", handler.listReviews)
	router.Get("/{reviewID}", handler.getReview)

	// ## Authenticated Writes (ownership enforced in the service)
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.createReview)
		protected.Patch("/{reviewID}", handler.updateReview)
		protected.Delete("/{reviewID}", handler.deleteReview)
	})

	// ## Nested Comments
	router.Mount("/{reviewID}/comments", commentRoutes)

	return router
}

// # Review Endpoints

/*
GET /api/v1/titles/{titleID}/reviews.

Description: Lists reviews for a title, newest first.

Response:
  - 200: []Review: Paginated list
  - 404: ErrNotFound: Title not found
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), titleID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}.

Response:
  - 200: Review: Success
  - 404: ErrNotFound: Title or review not found
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.UUIDParam(request, "reviewID", "Review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
POST /api/v1/titles/{titleID}/reviews.

Description: Creates the caller's review for the title and refreshes the
title rating.

Request (Body):
  - { "text": "string", "score": 1..10 }

Response:
  - 201: Review: Created entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Title not found
  - 409: ErrConflict: Caller already reviewed this title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), titleID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Partially updates text and/or score; omitted fields keep
their value. Allowed for the author, moderators, and admins.

Request (Body):
  - { "text"?: "string", "score"?: 1..10 }

Response:
  - 200: Review: Updated entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Not the author and not a moderator
  - 404: ErrNotFound: Title or review not found
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.UUIDParam(request, "reviewID", "Review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), titleID, reviewID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Removes a review and its comments. Allowed for the author,
moderators, and admins.

Response:
  - 204: No Content: Success
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Not the author and not a moderator
  - 404: ErrNotFound: Title or review not found
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.UUIDParam(request, "reviewID", "Review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), titleID, reviewID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
