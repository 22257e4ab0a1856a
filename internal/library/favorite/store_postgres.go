// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/reelhub/internal/platform/database/schema"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on library.favorite.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL favorite repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var favoriteColumns = strings.Join(schema.LibraryFavorite.Columns(), ", ")

// ListByAccount returns the account's favorites, newest first.
func (repository *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]*Favorite, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		favoriteColumns, schema.LibraryFavorite.Table,
		schema.LibraryFavorite.AccountID, schema.LibraryFavorite.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_favorite_repo_list_failed")
	}
	defer rows.Close()

	favorites := make([]*Favorite, 0)
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "postgres_favorite_repo_scan_failed")
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_favorite_repo_list_failed")
	}
	return favorites, nil
}

// FindByMedia returns the account's favorite for one catalog item.
func (repository *PostgresRepository) FindByMedia(ctx context.Context, accountID, mediaType, mediaID string) (*Favorite, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		favoriteColumns, schema.LibraryFavorite.Table,
		schema.LibraryFavorite.AccountID, schema.LibraryFavorite.MediaType, schema.LibraryFavorite.MediaID,
	)

	favorite, err := scanFavorite(repository.pool.QueryRow(ctx, query, accountID, mediaType, mediaID))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_favorite_repo_find_by_media_failed")
	}
	return favorite, nil
}

// Create inserts a favorite; the (account, type, id) unique key maps to
// dberr.ErrDuplicate.
func (repository *PostgresRepository) Create(ctx context.Context, favorite *Favorite) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.LibraryFavorite.Table, favoriteColumns,
	)

	_, err := repository.pool.Exec(ctx, query,
		favorite.ID,
		favorite.AccountID,
		favorite.Type,
		favorite.Ref.ID,
		favorite.Title,
		favorite.Poster,
		favorite.MediaRate,
		favorite.CreatedAt,
		favorite.UpdatedAt,
	)
	return dberr.Wrap(err, "postgres_favorite_repo_create_failed")
}

// Delete removes a favorite owned by accountID.
func (repository *PostgresRepository) Delete(ctx context.Context, id, accountID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryFavorite.Table, schema.LibraryFavorite.ID, schema.LibraryFavorite.AccountID,
	)

	tag, err := repository.pool.Exec(ctx, query, id, accountID)
	if err != nil {
		return dberr.Wrap(err, "postgres_favorite_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanFavorite(row pgx.Row) (*Favorite, error) {
	favorite := &Favorite{}
	err := row.Scan(
		&favorite.ID,
		&favorite.AccountID,
		&favorite.Type,
		&favorite.Ref.ID,
		&favorite.Title,
		&favorite.Poster,
		&favorite.MediaRate,
		&favorite.CreatedAt,
		&favorite.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return favorite, nil
}
