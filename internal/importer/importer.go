// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

/*
Package importer bulk-loads the catalog from a directory of CSV fixtures.

The directory must contain seven files with fixed column orders:

	users.csv        id,username,email,role,bio,first_name,last_name
	category.csv     id,name,slug
	genre.csv        id,name,slug
	titles.csv       id,name,year,category
	genre_title.csv  id,title_id,genre_id
	review.csv       id,title_id,text,author,score,pub_date
	comments.csv     id,review_id,text,author,pub_date

Files are loaded in strict dependency order (users and dictionaries first,
then titles, then reviews, then comments). The whole load runs in a single
transaction: either every file lands or none does.

CSV ids are fixture-local. The importer assigns fresh database ids and
keeps per-file translation maps so cross-file references resolve, which
lets the same fixture set load into a non-empty database.
*/
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revio-app/revio/internal/platform/database/schema"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/pkg/uuidv7"
)

// # Importer

// Importer loads a CSV fixture directory into PostgreSQL.
type Importer struct {
	db     *pgxpool.Pool
	logger *slog.Logger

	// Translation maps from fixture-local CSV ids to database ids.
	userIDs     map[string]string
	categoryIDs map[string]int
	genreIDs    map[string]int
	titleIDs    map[string]int
	reviewIDs   map[string]string

	// Titles touched by reviews, for the final rating recomputation.
	touchedTitles map[int]struct{}
}

// New constructs an [Importer] bound to a connection pool.
func New(db *pgxpool.Pool, logger *slog.Logger) *Importer {
	return &Importer{
		db:            db,
		logger:        logger,
		userIDs:       make(map[string]string),
		categoryIDs:   make(map[string]int),
		genreIDs:      make(map[string]int),
		titleIDs:      make(map[string]int),
		reviewIDs:     make(map[string]string),
		touchedTitles: make(map[int]struct{}),
	}
}

/*
Run loads every fixture file from dir inside one transaction.

Parameters:
  - context: context.Context
  - dir: string (Directory containing the seven CSV files)

Returns:
  - error: The first parse or insert failure; the transaction rolls back
*/
func (importer *Importer) Run(ctx context.Context, dir string) error {
	tx, err := importer.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("importer: begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	steps := []struct {
		file string
		load func(context.Context, pgx.Tx, [][]string) error
	}{
		{"users.csv", importer.loadUsers},
		{"category.csv", importer.loadCategories},
		{"genre.csv", importer.loadGenres},
		{"titles.csv", importer.loadTitles},
		{"genre_title.csv", importer.loadTitleGenres},
		{"review.csv", importer.loadReviews},
		{"comments.csv", importer.loadComments},
	}

	for _, step := range steps {
		rows, err := readCSV(filepath.Join(dir, step.file))
		if err != nil {
			return err
		}
		if err := step.load(ctx, tx, rows); err != nil {
			return fmt.Errorf("importer: %s: %w", step.file, err)
		}
		importer.logger.Info("fixture_loaded",
			slog.String("file", step.file),
			slog.Int("rows", len(rows)),
		)
	}

	if err := importer.recomputeRatings(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("importer: commit: %w", err)
	}
	return nil
}

// readCSV reads a fixture file and drops its header row.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

// # Load Steps

// loadUsers: id,username,email,role,bio,first_name,last_name
func (importer *Importer) loadUsers(context context.Context, tx pgx.Tx, rows [][]string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, t.Table, t.ID, t.Username, t.Email, t.Role, t.Bio, t.FirstName, t.LastName, t.CreatedAt, t.UpdatedAt)

	for _, row := range rows {
		if len(row) < 7 {
			return fmt.Errorf("row has %d columns, want 7", len(row))
		}
		role := sec.UserRole(row[3])
		if !role.IsValid() {
			return fmt.Errorf("unknown role %q for user %q", row[3], row[1])
		}

		id := uuidv7.New()
		_, err := tx.Exec(context, query, id, row[1], row[2], role, row[4], row[5], row[6])
		if err != nil {
			return fmt.Errorf("insert user %q: %w", row[1], err)
		}
		importer.userIDs[row[0]] = id
	}
	return nil
}

// loadCategories: id,name,slug
func (importer *Importer) loadCategories(context context.Context, tx pgx.Tx, rows [][]string) error {
	t := schema.CatalogCategory
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		t.Table, t.Name, t.Slug, t.ID)

	for _, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("row has %d columns, want 3", len(row))
		}
		var id int
		if err := tx.QueryRow(context, query, row[1], row[2]).Scan(&id); err != nil {
			return fmt.Errorf("insert category %q: %w", row[2], err)
		}
		importer.categoryIDs[row[0]] = id
	}
	return nil
}

// loadGenres: id,name,slug
func (importer *Importer) loadGenres(context context.Context, tx pgx.Tx, rows [][]string) error {
	t := schema.CatalogGenre
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		t.Table, t.Name, t.Slug, t.ID)

	for _, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("row has %d columns, want 3", len(row))
		}
		var id int
		if err := tx.QueryRow(context, query, row[1], row[2]).Scan(&id); err != nil {
			return fmt.Errorf("insert genre %q: %w", row[2], err)
		}
		importer.genreIDs[row[0]] = id
	}
	return nil
}

// loadTitles: id,name,year,category
func (importer *Importer) loadTitles(context context.Context, tx pgx.Tx, rows [][]string) error {
	t := schema.CatalogTitle
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, NOW()) RETURNING %s
	`, t.Table, t.Name, t.Year, t.CategoryID, t.CreatedAt, t.ID)

	for _, row := range rows {
		if len(row) < 4 {
			return fmt.Errorf("row has %d columns, want 4", len(row))
		}
		year, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("title %q: bad year %q", row[1], row[2])
		}
		categoryID, ok := importer.categoryIDs[row[3]]
		if !ok {
			return fmt.Errorf("title %q references unknown category id %q", row[1], row[3])
		}

		var id int
		if err := tx.QueryRow(context, query, row[1], year, categoryID).Scan(&id); err != nil {
			return fmt.Errorf("insert title %q: %w", row[1], err)
		}
		importer.titleIDs[row[0]] = id
	}
	return nil
}

// loadTitleGenres: id,title_id,genre_id (the first column is unused)
func (importer *Importer) loadTitleGenres(context context.Context, tx pgx.Tx, rows [][]string) error {
	t := schema.TitleGenre
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, t.Table, t.TitleID, t.GenreID)

	for _, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("row has %d columns, want 3", len(row))
		}
		titleID, ok := importer.titleIDs[row[1]]
		if !ok {
			return fmt.Errorf("link references unknown title id %q", row[1])
		}
		genreID, ok := importer.genreIDs[row[2]]
		if !ok {
			return fmt.Errorf("link references unknown genre id %q", row[2])
		}
		if _, err := tx.Exec(context, query, titleID, genreID); err != nil {
			return fmt.Errorf("link title %d to genre %d: %w", titleID, genreID, err)
		}
	}
	return nil
}

// loadReviews: id,title_id,text,author,score,pub_date
func (importer *Importer) loadReviews(context context.Context, tx pgx.Tx, rows [][]string) error {
	t := schema.SocialReview
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)
	`, t.Table, t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate)

	for _, row := range rows {
		if len(row) < 6 {
			return fmt.Errorf("row has %d columns, want 6", len(row))
		}
		titleID, ok := importer.titleIDs[row[1]]
		if !ok {
			return fmt.Errorf("review references unknown title id %q", row[1])
		}
		authorID, ok := importer.userIDs[row[3]]
		if !ok {
			return fmt.Errorf("review references unknown user id %q", row[3])
		}
		score, err := strconv.Atoi(row[4])
		if err != nil {
			return fmt.Errorf("review %q: bad score %q", row[0], row[4])
		}
		pubDate, err := parseTimestamp(row[5])
		if err != nil {
			return fmt.Errorf("review %q: %w", row[0], err)
		}

		id := uuidv7.New()
		if _, err := tx.Exec(context, query, id, titleID, authorID, row[2], score, pubDate); err != nil {
			return fmt.Errorf("insert review %q: %w", row[0], err)
		}
		importer.reviewIDs[row[0]] = id
		importer.touchedTitles[titleID] = struct{}{}
	}
	return nil
}

// loadComments: id,review_id,text,author,pub_date
func (importer *Importer) loadComments(context context.Context, tx pgx.Tx, rows [][]string) error {
	t := schema.SocialComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
	`, t.Table, t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate)

	for _, row := range rows {
		if len(row) < 5 {
			return fmt.Errorf("row has %d columns, want 5", len(row))
		}
		reviewID, ok := importer.reviewIDs[row[1]]
		if !ok {
			return fmt.Errorf("comment references unknown review id %q", row[1])
		}
		authorID, ok := importer.userIDs[row[3]]
		if !ok {
			return fmt.Errorf("comment references unknown user id %q", row[3])
		}
		pubDate, err := parseTimestamp(row[4])
		if err != nil {
			return fmt.Errorf("comment %q: %w", row[0], err)
		}

		if _, err := tx.Exec(context, query, uuidv7.New(), reviewID, authorID, row[2], pubDate); err != nil {
			return fmt.Errorf("insert comment %q: %w", row[0], err)
		}
	}
	return nil
}

// recomputeRatings refreshes the cached rating of every title that
// received reviews during the load.
func (importer *Importer) recomputeRatings(context context.Context, tx pgx.Tx) error {
	title := schema.CatalogTitle
	reviewTable := schema.SocialReview
	query := fmt.Sprintf(`
		UPDATE %s SET %s = (
			SELECT ROUND(AVG(%s))::int FROM %s WHERE %s = $1
		) WHERE %s = $1
	`, title.Table, title.Rating,
		reviewTable.Score, reviewTable.Table, reviewTable.TitleID,
		title.ID)

	for titleID := range importer.touchedTitles {
		if _, err := tx.Exec(context, query, titleID); err != nil {
			return fmt.Errorf("importer: recompute rating for title %d: %w", titleID, err)
		}
	}
	return nil
}

// parseTimestamp accepts the fixture timestamp format (RFC 3339 with
// optional fractional seconds).
func parseTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", value)
	}
	return parsed, nil
}
