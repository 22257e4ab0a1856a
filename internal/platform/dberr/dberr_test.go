// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

/*
TestWrap classifies driver errors from both storage backends.
*/
func TestWrap(t *testing.T) {
	pgDuplicate := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "account_username_key"}
	mongoDuplicate := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pg_no_rows", pgx.ErrNoRows, dberr.ErrNotFound},
		{"mongo_no_documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), dberr.ErrNotFound},
		{"pg_unique", fmt.Errorf("insert: %w", pgDuplicate), dberr.ErrDuplicate},
		{"mongo_duplicate_key", mongoDuplicate, dberr.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, dberr.Wrap(tt.err, "test_action"), tt.want)
		})
	}
}

/*
TestWrap_Internal hides unknown failures behind a 500.
*/
func TestWrap_Internal(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	err := dberr.Wrap(errors.New("connection reset"), "account_store_create_failed")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
	assert.Contains(t, ae.Cause.Error(), "account_store_create_failed")
	assert.NotErrorIs(t, err, dberr.ErrDuplicate)
}
