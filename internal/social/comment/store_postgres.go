package comment

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ReviewExists(context context.Context, titleID int, reviewID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM social.review WHERE titleid = $1 AND id = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, reviewID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_review_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID string, limit, offset int) ([]*Comment, int, error) {
	const query = `
		SELECT c.id, c.reviewid, c.authorid, u.username, c.text, c.pubdate,
		       COUNT(*) OVER() AS total
		FROM social.comment c
		JOIN users.account u ON u.id = c.authorid
		WHERE c.reviewid = $1
		ORDER BY c.pubdate ASC, c.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	var total int
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
			&comment.Text, &comment.PubDate, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, reviewID, commentID string) (*Comment, error) {
	const query = `
		SELECT c.id, c.reviewid, c.authorid, u.username, c.text, c.pubdate
		FROM social.comment c
		JOIN users.account u ON u.id = c.authorid
		WHERE c.reviewid = $1 AND c.id = $2
	`

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, reviewID, commentID).Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}

	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.comment (id, reviewid, authorid, text, pubdate)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING pubdate
	`
	err := repository.db.QueryRow(context, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.PubDate)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	repository.hydrateAuthor(context, comment)
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	const query = `UPDATE social.comment SET text = $3 WHERE reviewid = $1 AND id = $2`

	result, err := repository.db.Exec(context, query, comment.ReviewID, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID string) error {
	const query = `DELETE FROM social.comment WHERE reviewid = $1 AND id = $2`

	result, err := repository.db.Exec(context, query, reviewID, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// hydrateAuthor backfills the denormalized username after an insert.
func (repository *PostgresRepository) hydrateAuthor(context context.Context, comment *Comment) {
	const query = `SELECT username FROM users.account WHERE id = $1`
	_ = repository.db.QueryRow(context, query, comment.AuthorID).Scan(&comment.Author)
}
