// Package category manages the catalog's category reference data.
//
// Categories are flat, slug-addressed labels ("movies", "books") that every
// title may carry exactly one of. Reads are public; writes are reserved for
// administrators.
package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revio-app/revio/internal/platform/middleware"
	requestutil "github.com/revio-app/revio/internal/platform/request"
	"github.com/revio-app/revio/internal/platform/respond"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with category endpoints.
// Mutations require the admin role; listing is public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireRole(sec.RoleAdmin))
		protected.Post("/", handler.createCategory)
		protected.Delete("/{slug}", handler.deleteCategory)
	})

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.service.ListCategories(request.Context(), search, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
