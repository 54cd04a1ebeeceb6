package genre

// Genre is a slug-addressed label ("drama", "rock") that titles carry
// zero or more of.
type Genre struct {
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
	nameConstraint = "genre_name_key"
	slugConstraint = "genre_slug_key"
)
