package schema

// TitleGenreTable represents the 'catalog.titlegenre' table
type TitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// TitleGenre is the schema definition for catalog.titlegenre
var TitleGenre = TitleGenreTable{
	Table:   "catalog.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}
