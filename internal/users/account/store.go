// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"time"
)

// # Repository Contracts

// Repository defines the persistence contract for accounts.
//
// Implementations report a missing account as dberr.ErrNotFound and a
// username/email collision as dberr.ErrDuplicate. The unique constraint in
// storage is the authority on uniqueness.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)

	/*
		Create persists a new account.

		Returns:
		  - error: dberr.ErrDuplicate when the username or email is taken
	*/
	Create(ctx context.Context, account *Account) error

	// Update rewrites the mutable fields (display name, credential, updatedAt).
	Update(ctx context.Context, account *Account) error
}

// AttemptLimiter throttles repeated signin failures per username.
type AttemptLimiter interface {
	// Allow reports whether another attempt may be made, and if not, for how long to wait.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, key string) error
	// Reset forgets all failures for key.
	Reset(ctx context.Context, key string) error
}
