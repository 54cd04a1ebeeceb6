package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/revio-app/revio/internal/platform/middleware"
	requestutil "github.com/revio-app/revio/internal/platform/request"
	"github.com/revio-app/revio/internal/platform/respond"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with title endpoints. The review subtree
// is mounted underneath each title so review URLs stay scoped to their
// parent work.
func (handler *Handler) Routes(reviewRoutes chi.Router) chi.Router {
	router := chi.NewRouter()

	// ## Public Catalog
	router.Get("/", handler.listTitles)
	router.Get("/{titleID}", handler.getTitle)

	// ## Administrative
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireRole(sec.RoleAdmin))
		protected.Post("/", handler.createTitle)
		protected.Patch("/{titleID}", handler.updateTitle)
		protected.Delete("/{titleID}", handler.deleteTitle)
	})

	// ## Nested Reviews
	router.Mount("/{titleID}/reviews", reviewRoutes)

	return router
}

// # Title Endpoints

/*
GET /api/v1/titles.

Description: Retrieves a paginated catalog listing. All filters combine
with AND semantics.

Request:
  - category: string (Category slug)
  - genre: string (Genre slug)
  - name: string (Substring match)
  - year: int (Exact match)
  - page, limit: int

Response:
  - 200: []Title: Paginated list
*/
func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		CategorySlug: queryParams.Get("category"),
		GenreSlug:    queryParams.Get("genre"),
		Name:         queryParams.Get("name"),
	}

	if rawYear := queryParams.Get("year"); rawYear != "" {
		if year, err := strconv.Atoi(rawYear); err == nil {
			filter.Year = &year
		}
	}

	titles, total, err := handler.service.ListTitles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/titles/{titleID}.

Description: Retrieves a single title, including its current rating,
category, and genres. Served from the Redis cache when warm.

Response:
  - 200: Title: Success
  - 404: ErrNotFound: Title not found
*/
func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.GetTitle(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
POST /api/v1/titles.

Description: Registers a new work in the catalog. Category and genres are
referenced by slug; unknown slugs fail validation.

Request (Body):
  - CreateInput JSON object

Response:
  - 201: Title: Created entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Admin only
  - 409: ErrConflict: Duplicate name and year
*/
func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.CreateTitle(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

/*
PATCH /api/v1/titles/{titleID}.

Description: Partially updates a title. Absent fields keep their value;
a present genre list replaces the full set.

Response:
  - 200: Title: Updated entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Admin only
  - 404: ErrNotFound: Title not found
*/
func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.UpdateTitle(request.Context(), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
DELETE /api/v1/titles/{titleID}.

Description: Removes a title and cascades to its reviews and comments.

Response:
  - 204: No Content: Success
  - 403: ErrForbidden: Admin only
  - 404: ErrNotFound: Title not found
*/
func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTitle(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
