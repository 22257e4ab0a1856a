// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines persistence for reviews. Listings are newest first and
// carry the author projection.
type Repository interface {
	ListByMedia(ctx context.Context, mediaType, mediaID string) ([]*Review, error)
	ListByAccount(ctx context.Context, accountID string) ([]*Review, error)

	// Create stores review under review.Author.ID.
	Create(ctx context.Context, review *Review) error

	// Delete removes a review written by accountID; dberr.ErrNotFound otherwise.
	Delete(ctx context.Context, id, accountID string) error
}
