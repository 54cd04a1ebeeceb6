package title

import (
	"context"
	"log/slog"

	"github.com/revio-app/revio/internal/catalog/category"
	"github.com/revio-app/revio/internal/catalog/genre"
	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/validate"
)

// # Service Layer

// Service orchestrates catalog rules for titles: slug resolution,
// validation, and cache coherence.
type Service struct {
	repo       Repository
	categories category.Repository
	genres     genre.Repository
	cache      Cache
	logger     *slog.Logger
}

// NewService constructs a new title [Service].
func NewService(repo Repository, categories category.Repository, genres genre.Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		cache:      cache,
		logger:     logger,
	}
}

/*
ListTitles retrieves a filtered, paginated list of titles.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Title: Matching titles
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListTitles(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetTitle retrieves a single title, preferring the Redis cache.

A cache read failure is logged and degrades to a database read; it never
fails the request.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Title: Hydrated entity
  - error: NotFound or retrieval failures
*/
func (service *Service) GetTitle(context context.Context, id int) (*Title, error) {
	cached, err := service.cache.Get(context, id)
	if err != nil {
		service.logger.Warn("title_cache_read_failed", slog.Int("title_id", id), slog.Any("error", err))
	}
	if cached != nil {
		return cached, nil
	}

	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, title); err != nil {
		service.logger.Warn("title_cache_write_failed", slog.Int("title_id", id), slog.Any("error", err))
	}

	return title, nil
}

/*
CreateTitle validates the payload, resolves category and genre slugs, and
persists the new title.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: Created entity with hydrated associations
  - error: Validation, Conflict (duplicate name+year), or persistence failures
*/
func (service *Service) CreateTitle(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxNameLen)
	validator.Range(FieldYear, input.Year, MinYear, MaxYear)
	validator.Required(FieldCategory, input.Category)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	resolvedCategory, err := service.resolveCategory(context, input.Category)
	if err != nil {
		return nil, err
	}
	title.Category = resolvedCategory

	resolvedGenres, err := service.resolveGenres(context, input.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = resolvedGenres

	if err := service.repo.Create(context, title); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Title with this name and year already exists")
		}
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int("title_id", title.ID),
		slog.String("name", title.Name),
	)

	return title, nil
}

/*
UpdateTitle applies a partial update to an existing title.

Nil input fields are left untouched. A non-nil Genre replaces the complete
genre set. The cache entry is invalidated on success.

Parameters:
  - context: context.Context
  - id: int
  - input: UpdateInput

Returns:
  - *Title: Updated entity
  - error: Validation, NotFound, Conflict, or persistence failures
*/
func (service *Service) UpdateTitle(context context.Context, id int, input UpdateInput) (*Title, error) {
	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, MaxNameLen)
		title.Name = *input.Name
	}
	if input.Year != nil {
		validator.Range(FieldYear, *input.Year, MinYear, MaxYear)
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Category != nil {
		resolvedCategory, err := service.resolveCategory(context, *input.Category)
		if err != nil {
			return nil, err
		}
		title.Category = resolvedCategory
	}

	if input.Genre != nil {
		resolvedGenres, err := service.resolveGenres(context, *input.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = resolvedGenres
	}

	if err := service.repo.Update(context, title); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Title with this name and year already exists")
		}
		return nil, err
	}

	service.invalidate(context, id)
	service.logger.Info("title_updated", slog.Int("title_id", id))

	return title, nil
}

/*
DeleteTitle removes a title and, via cascade, its reviews and comments.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: NotFound or persistence failures
*/
func (service *Service) DeleteTitle(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidate(context, id)
	service.logger.Info("title_deleted", slog.Int("title_id", id))

	return nil
}

// # Slug Resolution

// resolveCategory maps a category slug to its entity, converting a miss
// into a field-level validation error.
func (service *Service) resolveCategory(context context.Context, slug string) (*category.Category, error) {
	resolved, err := service.categories.FindBySlug(context, slug)
	if err != nil {
		if apperr.As(err) != nil && apperr.As(err).HTTPStatus == 404 {
			return nil, validate.RequiredError(FieldCategory, "Unknown category slug: "+slug)
		}
		return nil, err
	}
	return resolved, nil
}

// resolveGenres maps genre slugs to entities, converting any miss into a
// field-level validation error.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]genre.Genre, error) {
	resolved := make([]genre.Genre, 0, len(slugs))
	for _, genreSlug := range slugs {
		found, err := service.genres.FindBySlug(context, genreSlug)
		if err != nil {
			if apperr.As(err) != nil && apperr.As(err).HTTPStatus == 404 {
				return nil, validate.RequiredError(FieldGenre, "Unknown genre slug: "+genreSlug)
			}
			return nil, err
		}
		resolved = append(resolved, *found)
	}
	return resolved, nil
}

// invalidate drops the cache entry; failures are logged, never surfaced.
func (service *Service) invalidate(context context.Context, id int) {
	if err := service.cache.Invalidate(context, id); err != nil {
		service.logger.Warn("title_cache_invalidate_failed", slog.Int("title_id", id), slog.Any("error", err))
	}
}
