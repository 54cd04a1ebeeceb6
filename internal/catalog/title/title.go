/*
Package title manages the works that reviews attach to.

A title is a single piece of media ("Gone with the Wind", 1939) classified
by exactly one category and any number of genres. Titles never carry their
score directly from client input: the rating column is maintained by the
review layer as the rounded average of all review scores, and is null while
a title has no reviews.

# Core Responsibility

  - Classification: links titles to [category.Category] and [genre.Genre] by slug.
  - Discovery: filtered, paginated listing for the public catalog.
  - Caching: detail reads go through a Redis read-through cache.
*/
package title

import (
	"time"

	"github.com/revio-app/revio/internal/catalog/category"
	"github.com/revio-app/revio/internal/catalog/genre"
)

// Title represents a reviewable work in the catalog.
type Title struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Description *string            `json:"description"`
	Rating      *int               `json:"rating"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genre"`
	CreatedAt   time.Time          `json:"-"`
}

// # Write Payloads

// CreateInput is the payload for registering a new title.
// Category and genres are referenced by slug.
type CreateInput struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateInput is the payload for partial title updates.
// Nil fields are left untouched; a non-nil Genre replaces the full set.
type UpdateInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// # Search & Filtering

// Filter holds the supported catalog listing filters.
type Filter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)

// # Validation Limits

const (
	MaxNameLen = 256

	// MinYear admits ancient works; MaxYear leaves headroom for announced
	// releases without accepting arbitrary future numbers.
	MinYear = -3000
	MaxYear = 2050
)
