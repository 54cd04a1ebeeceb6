package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revio-app/revio/internal/catalog/category"
	"github.com/revio-app/revio/internal/catalog/genre"
	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/database/schema"
	"github.com/revio-app/revio/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed title store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Title Retrieval

/*
List returns a filtered and paginated list of titles.

Description: Category joins via LEFT JOIN so uncategorized titles still
appear. The genre filter uses EXISTS to avoid row duplication, and
COUNT(*) OVER() supplies the total for pagination metadata.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Title: Matching titles with category and genres hydrated
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			t.id, t.name, t.year, t.description, t.rating,
			c.id, c.name, c.slug,
			COUNT(*) OVER() AS total
		FROM catalog.title t
		LEFT JOIN catalog.category c ON c.id = t.categoryid
		WHERE 1=1
	`)

	args := []any{}
	argID := 1

	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.slug = $%d", argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	if filter.GenreSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM catalog.titlegenre tg
			JOIN catalog.genre g ON g.id = tg.genreid
			WHERE tg.titleid = t.id AND g.slug = $%d
		)`, argID))
		args = append(args, filter.GenreSlug)
		argID++
	}

	if filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.name ILIKE $%d", argID))
		args = append(args, "%"+filter.Name+"%")
		argID++
	}

	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.year = $%d", argID))
		args = append(args, *filter.Year)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.name ASC, t.id ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	var total int
	for rows.Next() {
		title := &Title{Genres: make([]genre.Genre, 0)}
		var categoryID *int
		var categoryName, categorySlug *string

		err := rows.Scan(
			&title.ID, &title.Name, &title.Year, &title.Description, &title.Rating,
			&categoryID, &categoryName, &categorySlug, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}

		if categoryID != nil {
			title.Category = &category.Category{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
		}

		titles = append(titles, title)
	}
	rows.Close()

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

/*
FindByID retrieves a single fully hydrated title.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Title: Hydrated entity
  - error: NotFound or database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Title, error) {
	const query = `
		SELECT
			t.id, t.name, t.year, t.description, t.rating, t.createdat,
			c.id, c.name, c.slug
		FROM catalog.title t
		LEFT JOIN catalog.category c ON c.id = t.categoryid
		WHERE t.id = $1
	`

	title := &Title{Genres: make([]genre.Genre, 0)}
	var categoryID *int
	var categoryName, categorySlug *string

	err := repository.db.QueryRow(context, query, id).Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.Rating, &title.CreatedAt,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title_by_id")
	}

	if categoryID != nil {
		title.Category = &category.Category{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}

	if err := repository.attachGenres(context, []*Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

// attachGenres hydrates the Genres slice for a page of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	titleByID := make(map[int]*Title, len(titles))
	titleIDs := make([]int32, 0, len(titles))
	for _, title := range titles {
		titleByID[title.ID] = title
		titleIDs = append(titleIDs, int32(title.ID))
	}

	const query = `
		SELECT tg.titleid, g.id, g.name, g.slug
		FROM catalog.titlegenre tg
		JOIN catalog.genre g ON g.id = tg.genreid
		WHERE tg.titleid = ANY($1)
		ORDER BY g.name ASC
	`

	rows, err := repository.db.Query(context, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		var g genre.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if title, ok := titleByID[titleID]; ok {
			title.Genres = append(title.Genres, g)
		}
	}

	return nil
}

// # Title Mutation

/*
Create inserts the title and its genre links atomically.

Parameters:
  - context: context.Context
  - title: *Title (Category and Genres already resolved)

Returns:
  - error: Conflict on duplicate name+year, or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title_tx")
	}
	defer transaction.Rollback(context)

	table := schema.CatalogTitle
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s, %s
	`, table.Table, table.Name, table.Year, table.Description, table.CategoryID, table.CreatedAt,
		table.ID, table.CreatedAt)

	var categoryID *int
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	err = transaction.QueryRow(context, insertQuery,
		title.Name, title.Year, title.Description, categoryID,
	).Scan(&title.ID, &title.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	joins := schema.TitleGenre
	linkQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		joins.Table, joins.TitleID, joins.GenreID)

	for _, g := range title.Genres {
		if _, err := transaction.Exec(context, linkQuery, title.ID, g.ID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}

	return transaction.Commit(context)
}

/*
Update rewrites the title row and replaces its genre links atomically.

Parameters:
  - context: context.Context
  - title: *Title

Returns:
  - error: NotFound, Conflict, or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, title *Title) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title_tx")
	}
	defer transaction.Rollback(context)

	table := schema.CatalogTitle
	updateQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`, table.Table, table.Name, table.Year, table.Description, table.CategoryID, table.ID)

	var categoryID *int
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	result, err := transaction.Exec(context, updateQuery,
		title.ID, title.Name, title.Year, title.Description, categoryID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	joins := schema.TitleGenre
	if _, err := transaction.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, joins.Table, joins.TitleID), title.ID,
	); err != nil {
		return dberr.Wrap(err, "unlink_title_genres")
	}

	linkQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		joins.Table, joins.TitleID, joins.GenreID)

	for _, g := range title.Genres {
		if _, err := transaction.Exec(context, linkQuery, title.ID, g.ID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}

	return transaction.Commit(context)
}

/*
Delete removes a title. Reviews, comments, and genre links cascade in the
database.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: NotFound or persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	table := schema.CatalogTitle

	result, err := repository.db.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}
