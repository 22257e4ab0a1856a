// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import "context"

// Repository defines persistence for favorites. Every implementation enforces
// uniqueness of (account, media type, media id) and reports it as
// dberr.ErrDuplicate.
type Repository interface {
	// ListByAccount returns the account's favorites, newest first.
	ListByAccount(ctx context.Context, accountID string) ([]*Favorite, error)

	// FindByMedia returns the account's favorite for one catalog item.
	FindByMedia(ctx context.Context, accountID, mediaType, mediaID string) (*Favorite, error)

	Create(ctx context.Context, favorite *Favorite) error

	// Delete removes a favorite owned by accountID; dberr.ErrNotFound otherwise.
	Delete(ctx context.Context, id, accountID string) error
}
