// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/reelhub/internal/platform/database/schema"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] on the users.account table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var accountColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// findBy runs a single-row lookup on column.
func (repository *PostgresRepository) findBy(ctx context.Context, column, value, action string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountColumns, schema.UserAccount.Table, column)

	account, err := scanAccount(repository.pool.QueryRow(ctx, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return account, nil
}

// FindByID retrieves an account by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	return repository.findBy(ctx, schema.UserAccount.ID, id, "postgres_account_repo_find_by_id_failed")
}

// FindByUsername retrieves an account by its unique username.
func (repository *PostgresRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	return repository.findBy(ctx, schema.UserAccount.Username, username, "postgres_account_repo_find_by_username_failed")
}

// FindByEmail retrieves an account by its unique email.
func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return repository.findBy(ctx, schema.UserAccount.Email, email, "postgres_account_repo_find_by_email_failed")
}

/*
Create inserts a new row into users.account.

Returns:
  - error: dberr.ErrDuplicate on a username/email unique violation (SQLSTATE 23505)
*/
func (repository *PostgresRepository) Create(ctx context.Context, account *Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserAccount.Table, accountColumns,
	)

	_, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.Username,
		nullableText(account.Email),
		account.DisplayName,
		account.Credential.Salt,
		account.Credential.Hash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	return dberr.Wrap(err, "postgres_account_repo_create_failed")
}

// Update rewrites the display name, credential and updatedAt of an account.
func (repository *PostgresRepository) Update(ctx context.Context, account *Account) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.DisplayName, schema.UserAccount.PasswordSalt,
		schema.UserAccount.PasswordHash, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.DisplayName,
		account.Credential.Salt,
		account.Credential.Hash,
		account.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Row Mapping

func scanAccount(row pgx.Row) (*Account, error) {
	var email *string
	account := &Account{}

	err := row.Scan(
		&account.ID,
		&account.Username,
		&email,
		&account.DisplayName,
		&account.Credential.Salt,
		&account.Credential.Hash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email != nil {
		account.Email = *email
	}
	return account, nil
}

// nullableText maps "" to SQL NULL so the partial unique index on email
// ignores accounts without one.
func nullableText(value string) any {
	if value == "" {
		return nil
	}
	return value
}
