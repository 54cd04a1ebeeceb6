package comment

import (
	"context"
	"log/slog"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/platform/validate"
	"github.com/revio-app/revio/pkg/pointer"
	"github.com/revio-app/revio/pkg/uuidv7"
)

// Service orchestrates comment business rules: parent review resolution
// and ownership-based mutation rights.
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

func (service *Service) ListComments(context context.Context, titleID int, reviewID string, limit, offset int) ([]*Comment, int, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByReview(context, reviewID, limit, offset)
}

func (service *Service) GetComment(context context.Context, titleID int, reviewID, commentID string) (*Comment, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, reviewID, commentID)
}

// CreateComment validates and persists a new comment under a review.
func (service *Service) CreateComment(context context.Context, titleID int, reviewID, authorID string, input Input) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     input.Text,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", reviewID),
	)

	return comment, nil
}

// UpdateComment applies a partial update to a comment's text after an
// ownership check. A nil text keeps the current value; PubDate is immutable.
func (service *Service) UpdateComment(context context.Context, titleID int, reviewID, commentID string, claims *sec.AuthClaims, input UpdateInput) (*Comment, error) {
	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := service.repo.FindByID(context, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.CanManageContent(sec.UserRole(claims.Role), claims.UserID, comment.AuthorID) {
		return nil, apperr.Forbidden("You may only edit your own comment")
	}

	comment.Text = pointer.Fallback(input.Text, comment.Text)

	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.String("comment_id", commentID))

	return comment, nil
}

// DeleteComment removes a comment after an ownership check.
func (service *Service) DeleteComment(context context.Context, titleID int, reviewID, commentID string, claims *sec.AuthClaims) error {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return err
	}

	comment, err := service.repo.FindByID(context, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.CanManageContent(sec.UserRole(claims.Role), claims.UserID, comment.AuthorID) {
		return apperr.Forbidden("You may only delete your own comment")
	}

	if err := service.repo.Delete(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", commentID))

	return nil
}

func (service *Service) ensureReview(context context.Context, titleID int, reviewID string) error {
	exists, err := service.repo.ReviewExists(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
