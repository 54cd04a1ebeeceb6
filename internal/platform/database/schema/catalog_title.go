package schema

// CatalogTitleTable represents the 'catalog.title' table
type CatalogTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	Rating      string
	CategoryID  string
	CreatedAt   string
}

// CatalogTitle is the schema definition for catalog.title
var CatalogTitle = CatalogTitleTable{
	Table:       "catalog.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	Rating:      "rating",
	CategoryID:  "categoryid",
	CreatedAt:   "createdat",
}
