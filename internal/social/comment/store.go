package comment

import "context"

// Repository defines the data access contract for comments.
type Repository interface {
	// ReviewExists reports whether the review exists under the given title.
	// Both IDs come from the URL, so a mismatched pair reads as missing.
	ReviewExists(context context.Context, titleID int, reviewID string) (bool, error)

	ListByReview(context context.Context, reviewID string, limit, offset int) ([]*Comment, int, error)
	FindByID(context context.Context, reviewID, commentID string) (*Comment, error)
	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, reviewID, commentID string) error
}
