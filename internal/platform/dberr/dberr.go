// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level storage errors and
// higher-level application errors.
//
// Both storage drivers (PostgreSQL and MongoDB) report through the same two
// sentinels so services never import a driver package.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taibuivan/reelhub/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a queried row or document doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrDuplicate is returned when a write violates a unique constraint or index.
	ErrDuplicate = apperr.Conflict("Resource already exists")
)

// Wrap inspects a storage error and classifies it.
//
//   - no rows / no documents -> [ErrNotFound]
//   - unique violation / duplicate key -> [ErrDuplicate]
//   - anything else -> apperr.Internal carrying the action for the logs
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if IsUniqueViolation(err) {
		return ErrDuplicate
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a PostgreSQL 23505 or a MongoDB
// duplicate key error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}
	return mongo.IsDuplicateKeyError(err)
}
