package review

import "context"

// Repository defines the data access contract for reviews.
//
// Every mutating method recomputes the parent title's rating in the same
// transaction as the review write.
type Repository interface {

	/*
		TitleExists reports whether the parent title is present.

		Parameters:
		  - context: context.Context
		  - titleID: int

		Returns:
		  - bool: Existence flag
		  - error: Database retrieval failures
	*/
	TitleExists(context context.Context, titleID int) (bool, error)

	/*
		ListByTitle returns a page of reviews for a title, newest first.

		Parameters:
		  - context: context.Context
		  - titleID: int
		  - limit, offset: int

		Returns:
		  - []*Review: Matching reviews with author usernames hydrated
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	ListByTitle(context context.Context, titleID int, limit, offset int) ([]*Review, int, error)

	/*
		FindByID returns a review scoped to its parent title, so a review
		reached through the wrong title URL reads as missing.

		Parameters:
		  - context: context.Context
		  - titleID: int
		  - reviewID: string

		Returns:
		  - *Review: Hydrated entity
		  - error: NotFound or database retrieval failures
	*/
	FindByID(context context.Context, titleID int, reviewID string) (*Review, error)

	/*
		Create inserts the review and recomputes the title rating atomically.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Conflict on duplicate (title, author), or persistence failures
	*/
	Create(context context.Context, review *Review) error

	/*
		Update rewrites text and score and recomputes the title rating
		atomically. PubDate is immutable.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, review *Review) error

	/*
		Delete removes the review (cascading to its comments) and recomputes
		the title rating atomically.

		Parameters:
		  - context: context.Context
		  - titleID: int
		  - reviewID: string

		Returns:
		  - error: NotFound or persistence failures
	*/
	Delete(context context.Context, titleID int, reviewID string) error
}
