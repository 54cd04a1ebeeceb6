// Package genre manages the catalog's genre reference data.
package genre

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

// Routes returns a [chi.Router] with genre endpoints.
// Mutations require the admin role; listing is public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGenres)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireRole(sec.RoleAdmin))
		protected.Post("/", handler.createGenre)
		protected.Delete("/{slug}", handler.deleteGenre)
	})

	return router
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.service.ListGenres(request.Context(), search, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteGenre(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
