package category

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

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	table := schema.CatalogCategory

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
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	var total int
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	table := schema.CatalogCategory

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.Slug)

	c := &Category{}
	if err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	table := schema.CatalogCategory

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID)

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	table := schema.CatalogCategory

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	result, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
