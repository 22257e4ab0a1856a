// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/reelhub/internal/platform/database/schema"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on library.review joined with
// users.account.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectReviews is the joined projection; callers append WHERE and ORDER BY.
var selectReviews = func() string {
	r, a := schema.LibraryReview, schema.UserAccount
	columns := []string{
		"r." + r.ID, "r." + r.Content,
		"r." + r.MediaType, "r." + r.MediaID, "r." + r.MediaTitle, "r." + r.MediaPoster,
		"a." + a.ID, "a." + a.Username, "a." + a.DisplayName,
		"r." + r.CreatedAt, "r." + r.UpdatedAt,
	}
	return fmt.Sprintf(`SELECT %s FROM %s r JOIN %s a ON a.%s = r.%s`,
		strings.Join(columns, ", "), r.Table, a.Table, a.ID, r.AccountID,
	)
}()

func (repository *PostgresRepository) list(ctx context.Context, where, action string, args ...any) ([]*Review, error) {
	query := fmt.Sprintf(`%s WHERE %s ORDER BY r.%s DESC, r.%s DESC`,
		selectReviews, where, schema.LibraryReview.CreatedAt, schema.LibraryReview.ID,
	)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return reviews, nil
}

// ListByMedia returns all reviews of one catalog item.
func (repository *PostgresRepository) ListByMedia(ctx context.Context, mediaType, mediaID string) ([]*Review, error) {
	where := fmt.Sprintf(`r.%s = $1 AND r.%s = $2`, schema.LibraryReview.MediaType, schema.LibraryReview.MediaID)
	return repository.list(ctx, where, "postgres_review_repo_list_by_media_failed", mediaType, mediaID)
}

// ListByAccount returns all reviews written by an account.
func (repository *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]*Review, error) {
	where := fmt.Sprintf(`r.%s = $1`, schema.LibraryReview.AccountID)
	return repository.list(ctx, where, "postgres_review_repo_list_by_account_failed", accountID)
}

// Create inserts a review row.
func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.LibraryReview.Table, strings.Join(schema.LibraryReview.Columns(), ", "),
	)

	_, err := repository.pool.Exec(ctx, query,
		review.ID,
		review.Author.ID,
		review.Content,
		review.Type,
		review.Ref.ID,
		review.Title,
		review.Poster,
		review.CreatedAt,
		review.UpdatedAt,
	)
	return dberr.Wrap(err, "postgres_review_repo_create_failed")
}

// Delete removes a review written by accountID.
func (repository *PostgresRepository) Delete(ctx context.Context, id, accountID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReview.Table, schema.LibraryReview.ID, schema.LibraryReview.AccountID,
	)

	tag, err := repository.pool.Exec(ctx, query, id, accountID)
	if err != nil {
		return dberr.Wrap(err, "postgres_review_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID,
		&review.Content,
		&review.Type,
		&review.Ref.ID,
		&review.Title,
		&review.Poster,
		&review.Author.ID,
		&review.Author.Username,
		&review.Author.DisplayName,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}
