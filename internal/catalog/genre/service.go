package genre

import (
	"context"
	"log/slog"

	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/validate"
	"github.com/revio-app/revio/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	return service.repo.List(context, search, limit, offset)
}

func (service *Service) GetGenreBySlug(context context.Context, slugValue string) (*Genre, error) {
	return service.repo.FindBySlug(context, slugValue)
}

// CreateGenre validates and persists a new genre, deriving the slug from
// the name when omitted.
func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	if genre.Slug == "" {
		genre.Slug = slug.From(genre.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, MaxNameLen)
	validator.Required(FieldSlug, genre.Slug).MaxLen(FieldSlug, genre.Slug, MaxSlugLen).Slug(FieldSlug, genre.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, genre); err != nil {
		switch dberr.UniqueConstraint(err) {
		case nameConstraint:
			return validate.RequiredError(FieldName, "Genre with this name already exists")
		case slugConstraint:
			return validate.RequiredError(FieldSlug, "Genre with this slug already exists")
		}
		return err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return nil
}

// DeleteGenre removes a genre by slug. The join rows linking it to titles
// are removed by the database cascade.
func (service *Service) DeleteGenre(context context.Context, slugValue string) error {
	if err := service.repo.DeleteBySlug(context, slugValue); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("slug", slugValue))
	return nil
}
