// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/database/schema"
	"github.com/taibuivan/weebtsuki/internal/platform/dberr"
)

const resourceUser = "User"

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userSelect = fmt.Sprintf(`
	SELECT %s::text, %s, %s, %s, %s, %s, %s, %s
	FROM %s
`,
	schema.UserAccount.ID,
	schema.UserAccount.Username,
	schema.UserAccount.Email,
	schema.UserAccount.PasswordHash,
	schema.UserAccount.Role,
	schema.UserAccount.IsVerified,
	schema.UserAccount.CreatedAt,
	schema.UserAccount.UpdatedAt,
	schema.UserAccount.Table,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

/*
Create persists a new account into users.account.

Description: Timestamps are assigned by the database and written back.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict on a duplicate e-mail, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
		schema.UserAccount.Username,
		schema.UserAccount.Email,
		schema.UserAccount.PasswordHash,
		schema.UserAccount.Role,
		schema.UserAccount.IsVerified,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, resourceUser, "create user")
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := userSelect + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "find user by id")
	}
	return user, nil
}

// FindByEmail implements [UserRepository].
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := userSelect + fmt.Sprintf(" WHERE LOWER(%s) = LOWER($1)", schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "find user by email")
	}
	return user, nil
}

// UpdatePassword implements [UserRepository].
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.PasswordHash,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)
	return repository.exec(context, "update password", query, id, passwordHash)
}

// MarkVerified implements [UserRepository].
func (repository *PostgresUserRepository) MarkVerified(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.IsVerified,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)
	return repository.exec(context, "mark verified", query, id)
}

// exec runs a single-row update and reports a missing row as NotFound.
func (repository *PostgresUserRepository) exec(context context.Context, action, query string, args ...any) error {
	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, resourceUser, action)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}
