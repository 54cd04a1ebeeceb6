package review

import (
	stdctx "context"
	"log/slog"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/platform/validate"
	"github.com/revio-app/revio/pkg/pointer"
	"github.com/revio-app/revio/pkg/uuidv7"
)

// TitleCacheInvalidator drops a title's cached detail view. Review
// mutations change the rating embedded in that view, so every write here
// must invalidate it.
type TitleCacheInvalidator interface {
	Invalidate(context stdctx.Context, titleID int) error
}

// # Service Layer

// Service orchestrates review business rules: one review per author per
// title, score bounds, ownership-based mutation rights, and title cache
// coherence.
type Service struct {
	repo       Repository
	titleCache TitleCacheInvalidator
	logger     *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(repo Repository, titleCache TitleCacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		titleCache: titleCache,
		logger:     logger,
	}
}

/*
ListReviews returns a page of reviews for a title.

Parameters:
  - context: context.Context
  - titleID: int
  - limit, offset: int

Returns:
  - []*Review: Reviews, newest first
  - int: Total count
  - error: NotFound if the title is missing, or retrieval failures
*/
func (service *Service) ListReviews(context stdctx.Context, titleID int, limit, offset int) ([]*Review, int, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(context, titleID, limit, offset)
}

/*
GetReview returns a single review scoped to its parent title.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: string

Returns:
  - *Review: Hydrated entity
  - error: NotFound or retrieval failures
*/
func (service *Service) GetReview(context stdctx.Context, titleID int, reviewID string) (*Review, error) {
	return service.repo.FindByID(context, titleID, reviewID)
}

/*
CreateReview validates and persists a new review, updating the title
rating in the same transaction.

Parameters:
  - context: context.Context
  - titleID: int
  - authorID: string (Authenticated user UUID)
  - input: Input

Returns:
  - *Review: Created entity
  - error: Validation, NotFound (unknown title), Conflict (second review
    by the same author), or persistence failures
*/
func (service *Service) CreateReview(context stdctx.Context, titleID int, authorID string, input Input) (*Review, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		ID:       uuidv7.New(),
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.Create(context, review); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("You have already reviewed this title")
		}
		return nil, err
	}

	service.invalidateTitle(context, titleID)
	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.Int("title_id", titleID),
		slog.Int("score", review.Score),
	)

	return review, nil
}

/*
UpdateReview applies a partial update to a review after an ownership check.
Nil input fields keep their current value.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: string
  - claims: *sec.AuthClaims (Requester identity)
  - input: UpdateInput

Returns:
  - *Review: Updated entity
  - error: Validation, NotFound, Forbidden, or persistence failures
*/
func (service *Service) UpdateReview(context stdctx.Context, titleID int, reviewID string, claims *sec.AuthClaims, input UpdateInput) (*Review, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.CanManageContent(sec.UserRole(claims.Role), claims.UserID, review.AuthorID) {
		return nil, apperr.Forbidden("You may only edit your own review")
	}

	review.Text = pointer.Fallback(input.Text, review.Text)
	review.Score = pointer.Fallback(input.Score, review.Score)

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.invalidateTitle(context, titleID)
	service.logger.Info("review_updated", slog.String("review_id", reviewID), slog.Int("title_id", titleID))

	return review, nil
}

/*
DeleteReview removes a review after an ownership check. Its comments are
removed by the database cascade.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: string
  - claims: *sec.AuthClaims

Returns:
  - error: NotFound, Forbidden, or persistence failures
*/
func (service *Service) DeleteReview(context stdctx.Context, titleID int, reviewID string, claims *sec.AuthClaims) error {
	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.CanManageContent(sec.UserRole(claims.Role), claims.UserID, review.AuthorID) {
		return apperr.Forbidden("You may only delete your own review")
	}

	if err := service.repo.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.invalidateTitle(context, titleID)
	service.logger.Info("review_deleted", slog.String("review_id", reviewID), slog.Int("title_id", titleID))

	return nil
}

// # Internal Helpers

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	validator.Range(FieldScore, input.Score, MinScore, MaxScore)
	return validator.Err()
}

// validateUpdateInput checks only the fields the patch carries.
func validateUpdateInput(input UpdateInput) error {
	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}
	return validator.Err()
}

func (service *Service) ensureTitle(context stdctx.Context, titleID int) error {
	exists, err := service.repo.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

func (service *Service) invalidateTitle(context stdctx.Context, titleID int) {
	if err := service.titleCache.Invalidate(context, titleID); err != nil {
		service.logger.Warn("title_cache_invalidate_failed", slog.Int("title_id", titleID), slog.Any("error", err))
	}
}
