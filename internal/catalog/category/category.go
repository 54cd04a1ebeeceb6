package category

// Category groups titles by kind of work (e.g. "Movies", "Books").
// Categories are addressed by slug in the public API; the numeric ID
// never leaves the database layer.
type Category struct {
	ID   int    `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// # Validation Limits

const (
	MaxNameLen = 256
	MaxSlugLen = 50
)

// # Unique Constraints

// Index names from the schema; both name and slug must be unique.
const (
	nameConstraint = "category_name_key"
	slugConstraint = "category_slug_key"
)
