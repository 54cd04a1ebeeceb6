// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/database/schema"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/users/auth"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository constructs a PostgreSQL backed account store.
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// selectColumns is the canonical column list every read shares.
func selectColumns() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s, %s",
		t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio, t.Role,
		t.ConfirmationCodeHash, t.CodeIssuedAt, t.CreatedAt, t.UpdatedAt)
}

func scanUser(row interface{ Scan(...any) error }) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.ConfirmationCodeHash, &user.CodeIssuedAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (repository *PostgresAccountRepository) List(context context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE ($1 = '' OR %s ILIKE '%%' || $1 || '%%')
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`, selectColumns(), t.Table, t.Username, t.Username)

	rows, err := repository.db.Query(context, query, search, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var users []*auth.User
	var total int
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
			&user.Bio, &user.Role, &user.ConfirmationCodeHash, &user.CodeIssuedAt,
			&user.CreatedAt, &user.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}

	return users, total, nil
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	t := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), t.Table, t.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_by_id")
	}
	return user, nil
}

func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	t := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), t.Table, t.Username)

	user, err := scanUser(repository.db.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_by_username")
	}
	return user, nil
}

func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s
	`, t.Table, t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio, t.Role, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`, t.Table, t.Username, t.Email, t.FirstName, t.LastName, t.Bio, t.Role, t.UpdatedAt,
		t.ID, t.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.UpdatedAt)

	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresAccountRepository) DeleteByUsername(context context.Context, username string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.Username)

	tag, err := repository.db.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
