package category

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

func (service *Service) ListCategories(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	return service.repo.List(context, search, limit, offset)
}

func (service *Service) GetCategoryBySlug(context context.Context, slugValue string) (*Category, error) {
	return service.repo.FindBySlug(context, slugValue)
}

// CreateCategory validates and persists a new category.
// When the slug is omitted it is derived from the name.
func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if category.Slug == "" {
		category.Slug = slug.From(category.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, MaxNameLen)
	validator.Required(FieldSlug, category.Slug).MaxLen(FieldSlug, category.Slug, MaxSlugLen).Slug(FieldSlug, category.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, category); err != nil {
		switch dberr.UniqueConstraint(err) {
		case nameConstraint:
			return validate.RequiredError(FieldName, "Category with this name already exists")
		case slugConstraint:
			return validate.RequiredError(FieldSlug, "Category with this slug already exists")
		}
		return err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return nil
}

// DeleteCategory removes a category by slug. Titles referencing it keep
// existing with a NULL category.
func (service *Service) DeleteCategory(context context.Context, slugValue string) error {
	if err := service.repo.DeleteBySlug(context, slugValue); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("slug", slugValue))
	return nil
}
