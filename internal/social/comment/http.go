package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revio-app/revio/internal/platform/middleware"
	requestutil "github.com/revio-app/revio/internal/platform/request"
	"github.com/revio-app/revio/internal/platform/respond"
	"github.com/revio-app/revio/pkg/pagination"
)

// Handler implements the HTTP layer for comments. It is mounted under
// /titles/{titleID}/reviews/{reviewID}/comments.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)
	router.Get("/{commentID}", handler.getComment)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.createComment)
		protected.Patch("/{commentID}", handler.updateComment)
		protected.Delete("/{commentID}", handler.deleteComment)
	})

	return router
}

// parentIDs extracts the title and review identifiers shared by every route.
func parentIDs(request *http.Request) (int, string, error) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		return 0, "", err
	}
	reviewID, err := requestutil.UUIDParam(request, "reviewID", "Review")
	if err != nil {
		return 0, "", err
	}
	return titleID, reviewID, nil
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.UUIDParam(request, "commentID", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
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

	comment, err := handler.service.CreateComment(request.Context(), titleID, reviewID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.UUIDParam(request, "commentID", "Comment")
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

	comment, err := handler.service.UpdateComment(request.Context(), titleID, reviewID, commentID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.UUIDParam(request, "commentID", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), titleID, reviewID, commentID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
