package genre

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/database/schema"
	"github.com/revio-app/revio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	table := schema.CatalogGenre

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
	`, strings.Join(table.Columns(), ", "), table.Table)

	args := []any{}
	argID := 1

	if search != "" {
		query += fmt.Sprintf(" WHERE %s ILIKE $%d", table.Name, argID)
		args = append(args, "%"+search+"%")
		argID++
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", table.Name, argID, argID+1)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	var total int
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Genre, error) {
	table := schema.CatalogGenre

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.Slug)

	g := &Genre{}
	if err := repository.db.QueryRow(context, query, slug).Scan(&g.ID, &g.Name, &g.Slug); err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_slug")
	}

	return g, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	table := schema.CatalogGenre

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID)

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	table := schema.CatalogGenre

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	result, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
