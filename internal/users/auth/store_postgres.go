// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revio-app/revio/internal/platform/database/schema"
	"github.com/revio-app/revio/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgreSQL backed user store.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// selectColumns is the canonical column list every read shares.
func selectColumns() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s, %s",
		t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio, t.Role,
		t.ConfirmationCodeHash, t.CodeIssuedAt, t.CreatedAt, t.UpdatedAt)
}

func (repository *PostgresUserRepository) scanUser(row interface{ Scan(...any) error }) (*User, error) {
	user := &User{}
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

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	t := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), t.Table, t.Username)

	user, err := repository.scanUser(repository.db.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_by_username")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	t := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), t.Table, t.Email)

	user, err := repository.scanUser(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_by_email")
	}
	return user, nil
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
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

func (repository *PostgresUserRepository) SetConfirmationCode(context context.Context, userID, codeHash string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW(), %s = NOW() WHERE %s = $1
	`, t.Table, t.ConfirmationCodeHash, t.CodeIssuedAt, t.UpdatedAt, t.ID)

	_, err := repository.db.Exec(context, query, userID, codeHash)
	return dberr.Wrap(err, "set_confirmation_code")
}

func (repository *PostgresUserRepository) ClearConfirmationCode(context context.Context, userID string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NULL, %s = NULL, %s = NOW() WHERE %s = $1
	`, t.Table, t.ConfirmationCodeHash, t.CodeIssuedAt, t.UpdatedAt, t.ID)

	_, err := repository.db.Exec(context, query, userID)
	return dberr.Wrap(err, "clear_confirmation_code")
}
