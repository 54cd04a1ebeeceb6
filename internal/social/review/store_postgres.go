package review

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Review Retrieval

func (repository *PostgresRepository) TitleExists(context context.Context, titleID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int, limit, offset int) ([]*Review, int, error) {
	const query = `
		SELECT r.id, r.titleid, r.authorid, u.username, r.text, r.score, r.pubdate,
		       COUNT(*) OVER() AS total
		FROM social.review r
		JOIN users.account u ON u.id = r.authorid
		WHERE r.titleid = $1
		ORDER BY r.pubdate DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	var total int
	for rows.Next() {
		review := &Review{}
		err := rows.Scan(
			&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
			&review.Text, &review.Score, &review.PubDate, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, titleID int, reviewID string) (*Review, error) {
	const query = `
		SELECT r.id, r.titleid, r.authorid, u.username, r.text, r.score, r.pubdate
		FROM social.review r
		JOIN users.account u ON u.id = r.authorid
		WHERE r.titleid = $1 AND r.id = $2
	`

	review := &Review{}
	err := repository.db.QueryRow(context, query, titleID, reviewID).Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review_by_id")
	}

	return review, nil
}

// # Review Mutation

/*
Create inserts the review and refreshes the title rating in one transaction.

Description: The unique (titleid, authorid) index serializes concurrent
duplicate attempts; the loser receives a Conflict from the wrapped unique
violation. Committing the rating refresh together with the insert means no
reader can observe the review without its rating effect.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: Conflict or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_review_tx")
	}
	defer transaction.Rollback(context)

	const insertQuery = `
		INSERT INTO social.review (id, titleid, authorid, text, score, pubdate)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING pubdate
	`
	err = transaction.QueryRow(context, insertQuery,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.PubDate)
	if err != nil {
		return dberr.Wrap(err, "create_review")
	}

	if err := recomputeRating(context, transaction, review.TitleID); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_review_tx")
	}

	repository.hydrateAuthor(context, review)
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_review_tx")
	}
	defer transaction.Rollback(context)

	const updateQuery = `
		UPDATE social.review SET text = $3, score = $4
		WHERE titleid = $1 AND id = $2
	`
	result, err := transaction.Exec(context, updateQuery, review.TitleID, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	if err := recomputeRating(context, transaction, review.TitleID); err != nil {
		return err
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) Delete(context context.Context, titleID int, reviewID string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_review_tx")
	}
	defer transaction.Rollback(context)

	const deleteQuery = `DELETE FROM social.review WHERE titleid = $1 AND id = $2`
	result, err := transaction.Exec(context, deleteQuery, titleID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	if err := recomputeRating(context, transaction, titleID); err != nil {
		return err
	}

	return transaction.Commit(context)
}

// # Rating Aggregation

/*
recomputeRating derives the title rating from the full review set.

Description: SQL AVG over an empty set yields NULL, which directly encodes
"no reviews, no rating". ROUND applies half-away-from-zero, matching the
documented rating semantics. Runs inside the caller's transaction.
*/
func recomputeRating(context context.Context, transaction pgx.Tx, titleID int) error {
	const query = `
		UPDATE catalog.title
		SET rating = (
			SELECT ROUND(AVG(score))::int
			FROM social.review
			WHERE titleid = $1
		)
		WHERE id = $1
	`
	if _, err := transaction.Exec(context, query, titleID); err != nil {
		return dberr.Wrap(err, "recompute_title_rating")
	}
	return nil
}

// hydrateAuthor backfills the denormalized username after an insert.
// A lookup failure leaves the field empty rather than failing the write.
func (repository *PostgresRepository) hydrateAuthor(context context.Context, review *Review) {
	const query = `SELECT username FROM users.account WHERE id = $1`
	_ = repository.db.QueryRow(context, query, review.AuthorID).Scan(&review.Author)
}
