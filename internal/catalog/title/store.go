package title

import "context"

// # Title Data Access

// Repository defines the data access contract for titles.
type Repository interface {

	/*
		List returns a filtered, paginated slice of titles with their
		category and genres hydrated.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Title: Matching titles
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	/*
		FindByID returns a single fully hydrated title.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Title: Hydrated entity
		  - error: NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int) (*Title, error)

	/*
		Create inserts the title row and its genre links in one transaction.
		The Category and Genres fields must already be resolved to entities.

		Parameters:
		  - context: context.Context
		  - title: *Title

		Returns:
		  - error: Persistence failures (Conflict on duplicate name+year)
	*/
	Create(context context.Context, title *Title) error

	/*
		Update rewrites the title row and replaces its genre links in one
		transaction.

		Parameters:
		  - context: context.Context
		  - title: *Title

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, title *Title) error

	/*
		Delete removes the title. Reviews and comments underneath it are
		removed by the database cascade.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: NotFound or persistence failures
	*/
	Delete(context context.Context, id int) error
}

// # Cache Access

// Cache is the read-through cache for title detail views.
type Cache interface {
	// Get returns the cached title, or (nil, nil) on a miss.
	Get(context context.Context, id int) (*Title, error)
	// Set stores the title under its ID with the configured TTL.
	Set(context context.Context, title *Title) error
	// Invalidate drops the cached entry, if any.
	Invalidate(context context.Context, id int) error
}
